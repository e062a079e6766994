// Package acpi builds system description tables: a fixed 36-byte header
// followed by a body, with the length field and checksum kept valid after
// every mutation.
package acpi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

/*
  HEADER LAYOUT (little-endian)
  ------------------------------------------------------------------
  [0..4)    Signature         4 ASCII bytes
  [4..8)    Length            u32, always len(table)
  [8]       Revision          u8
  [9]       Checksum          u8, whole table sums to 0 mod 256
  [10..16)  OEM ID            6 ASCII bytes
  [16..24)  OEM Table ID      8 ASCII bytes
  [24..28)  OEM Revision      u32
  [28..32)  Creator ID        4 bytes
  [32..36)  Creator Revision  u32
*/

const HeaderSize = 36

const (
	offSignature       = 0
	offLength          = 4
	offRevision        = 8
	offChecksum        = 9
	offOEMID           = 10
	offOEMTableID      = 16
	offOEMRevision     = 24
	offCreatorID       = 28
	offCreatorRevision = 32
)

var (
	ErrTableTooShort = errors.New("table length is shorter than the header")
	ErrTableTooLarge = errors.New("table length overflows the length field")
	ErrOutOfBounds   = errors.New("write out of table bounds")
)

// Table is one system description table under construction.
// Create it with New or MustNew; mutating a zero Table returns
// ErrTableTooShort. It is not safe for concurrent use.
type Table struct {
	data []byte
}

// New writes the header and zero-pads the table to length bytes.
func New(
	signature [4]byte,
	length uint32,
	revision uint8,
	oemID [6]byte,
	oemTableID [8]byte,
	oemRevision uint32,
	creator Creator,
) (*Table, error) {
	if length < HeaderSize {
		return nil, fmt.Errorf("%w: length=%d, header=%d", ErrTableTooShort, length, HeaderSize)
	}

	data := make([]byte, 0, length)
	data = append(data, signature[:]...)
	data = binary.LittleEndian.AppendUint32(data, length)
	data = append(data, revision, 0)
	data = append(data, oemID[:]...)
	data = append(data, oemTableID[:]...)
	data = binary.LittleEndian.AppendUint32(data, oemRevision)
	data = append(data, creator.ID[:]...)
	data = binary.LittleEndian.AppendUint32(data, creator.Revision)

	// Zero-extend to the requested length.
	data = data[:length]
	clear(data[HeaderSize:])

	t := &Table{data: data}
	t.UpdateChecksum()
	return t, nil
}

// MustNew is like New but panics on an undersized length.
// Use it for tables whose sizes are fixed at compile time.
func MustNew(
	signature [4]byte,
	length uint32,
	revision uint8,
	oemID [6]byte,
	oemTableID [8]byte,
	oemRevision uint32,
	creator Creator,
) *Table {
	t, err := New(signature, length, revision, oemID, oemTableID, oemRevision, creator)
	if err != nil {
		panic(err)
	}
	return t
}

// UpdateChecksum zeroes the checksum byte and stores the value that makes the
// table sum to zero. Every mutating method calls it; it is exported for
// callers that patch the table through another path.
func (t *Table) UpdateChecksum() {
	if len(t.data) < HeaderSize {
		return
	}
	t.data[offChecksum] = 0
	t.data[offChecksum] = Checksum(t.data)
}

// seal restores both header invariants after a mutation.
func (t *Table) seal() {
	binary.LittleEndian.PutUint32(t.data[offLength:], uint32(len(t.data)))
	t.UpdateChecksum()
}

// checkHeader rejects tables that were not built by New.
func (t *Table) checkHeader() error {
	if len(t.data) < HeaderSize {
		return fmt.Errorf("%w: len=%d, header=%d", ErrTableTooShort, len(t.data), HeaderSize)
	}
	return nil
}

// grow extends the table by n zero bytes and returns the old end.
func (t *Table) grow(n int) (int, error) {
	if err := t.checkHeader(); err != nil {
		return 0, err
	}
	end := len(t.data)
	newLen := uint64(end) + uint64(n)
	if newLen > math.MaxUint32 {
		return 0, fmt.Errorf("%w: len=%d, grow=%d", ErrTableTooLarge, end, n)
	}

	t.data = append(t.data, make([]byte, n)...)
	return end, nil
}

// AppendField pushes f to the end of the table.
func (t *Table) AppendField(f Field) error {
	end, err := t.grow(f.Size())
	if err != nil {
		return err
	}
	f.Put(t.data[end:])
	t.seal()
	return nil
}

// AppendRaw copies b to the end of the table.
func (t *Table) AppendRaw(b []byte) error {
	end, err := t.grow(len(b))
	if err != nil {
		return err
	}
	copy(t.data[end:], b)
	t.seal()
	return nil
}

// WriteField overwrites existing bytes at offset with f. It never grows the table.
func (t *Table) WriteField(offset int, f Field) error {
	if err := t.checkHeader(); err != nil {
		return err
	}
	size := f.Size()
	if offset < 0 || offset > len(t.data) || size > len(t.data)-offset {
		return fmt.Errorf("%w: len=%d, off=%d, size=%d", ErrOutOfBounds, len(t.data), offset, size)
	}

	f.Put(t.data[offset : offset+size])
	// A write over the length field is undone here.
	t.seal()
	return nil
}

// AppendU8 through AppendU64 push a little-endian integer to the end of the table.
func (t *Table) AppendU8(v uint8) error   { return AppendScalar(t, v) }
func (t *Table) AppendU16(v uint16) error { return AppendScalar(t, v) }
func (t *Table) AppendU32(v uint32) error { return AppendScalar(t, v) }
func (t *Table) AppendU64(v uint64) error { return AppendScalar(t, v) }

// WriteU8 through WriteU64 overwrite a little-endian integer at offset.
// They fail with ErrOutOfBounds rather than grow the table.
func (t *Table) WriteU8(offset int, v uint8) error   { return WriteScalar(t, offset, v) }
func (t *Table) WriteU16(offset int, v uint16) error { return WriteScalar(t, offset, v) }
func (t *Table) WriteU32(offset int, v uint32) error { return WriteScalar(t, offset, v) }
func (t *Table) WriteU64(offset int, v uint64) error { return WriteScalar(t, offset, v) }

// Write appends p, so encoders can stream a body straight into the table.
func (t *Table) Write(p []byte) (int, error) {
	if err := t.AppendRaw(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteByte appends a single byte.
func (t *Table) WriteByte(c byte) error {
	return t.AppendRaw([]byte{c})
}

// WriteTo emits the whole table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.data)
	return int64(n), err
}

// AppendTo appends the table bytes to dst and returns the extended slice.
func (t *Table) AppendTo(dst []byte) []byte {
	return append(dst, t.data...)
}

// Bytes returns the current table. The slice aliases the table and must not
// be modified; it is only valid until the next mutation.
func (t *Table) Bytes() []byte {
	return t.data
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	data := make([]byte, len(t.data))
	copy(data, t.data)
	return &Table{data: data}
}

// Len is the current buffer length, which the length field mirrors.
func (t *Table) Len() int {
	return len(t.data)
}

// IsEmpty reports whether the table holds no bytes. A table from New always
// holds at least the header.
func (t *Table) IsEmpty() bool {
	return len(t.data) == 0
}

// Header accessors read back the fields New wrote. They must not be called
// on a zero Table.

func (t *Table) Signature() [4]byte {
	var s [4]byte
	copy(s[:], t.data[offSignature:])
	return s
}

// HeaderLength is the value stored in the length field.
func (t *Table) HeaderLength() uint32 {
	return binary.LittleEndian.Uint32(t.data[offLength:])
}

func (t *Table) Revision() uint8 {
	return t.data[offRevision]
}

func (t *Table) Checksum() uint8 {
	return t.data[offChecksum]
}

func (t *Table) OEMID() [6]byte {
	var id [6]byte
	copy(id[:], t.data[offOEMID:])
	return id
}

func (t *Table) OEMTableID() [8]byte {
	var id [8]byte
	copy(id[:], t.data[offOEMTableID:])
	return id
}

func (t *Table) OEMRevision() uint32 {
	return binary.LittleEndian.Uint32(t.data[offOEMRevision:])
}

func (t *Table) Creator() Creator {
	var c Creator
	copy(c.ID[:], t.data[offCreatorID:])
	c.Revision = binary.LittleEndian.Uint32(t.data[offCreatorRevision:])
	return c
}

// Valid reports whether the length field and checksum agree with the contents.
func (t *Table) Valid() bool {
	return t.checkHeader() == nil &&
		int(t.HeaderLength()) == len(t.data) &&
		Sum(t.data) == 0
}

var (
	_ io.Writer     = (*Table)(nil)
	_ io.ByteWriter = (*Table)(nil)
	_ io.WriterTo   = (*Table)(nil)
)
