package acpi

import "encoding/binary"

// Field is a fixed-size value with an explicit little-endian wire form.
// Put must fill exactly Size() bytes of dst.
type Field interface {
	Size() int
	Put(dst []byte)
}

// Scalar is the set of integer kinds with a fixed wire width.
// int, uint and uintptr are left out on purpose: their width depends on the platform.
type Scalar interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

type scalar[T Scalar] struct {
	v T
}

func (s scalar[T]) Size() int {
	return binary.Size(s.v)
}

// Put truncates the 64-bit little-endian form, which keeps the low bytes for
// both signed and unsigned kinds.
func (s scalar[T]) Put(dst []byte) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(s.v))
	copy(dst, b[:len(dst)])
}

// ScalarField wraps v so it can be passed wherever a Field is accepted.
func ScalarField[T Scalar](v T) Field {
	return scalar[T]{v: v}
}

// AppendScalar pushes v to the end of t.
func AppendScalar[T Scalar](t *Table, v T) error {
	return t.AppendField(scalar[T]{v: v})
}

// WriteScalar overwrites the bytes of t at offset with v.
func WriteScalar[T Scalar](t *Table, offset int, v T) error {
	return t.WriteField(offset, scalar[T]{v: v})
}
