package acpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pmTimerBlock uint16

func TestScalarField(t *testing.T) {
	testCases := []struct {
		name string
		f    Field
		want []byte
	}{
		{"uint8", ScalarField(uint8(0xAB)), []byte{0xAB}},
		{"uint16", ScalarField(uint16(0x1234)), []byte{0x34, 0x12}},
		{"uint32", ScalarField(uint32(0x12345678)), []byte{0x78, 0x56, 0x34, 0x12}},
		{"uint64", ScalarField(uint64(0x0102030405060708)), []byte{8, 7, 6, 5, 4, 3, 2, 1}},
		{"int8 negative", ScalarField(int8(-1)), []byte{0xFF}},
		{"int16 negative", ScalarField(int16(-2)), []byte{0xFE, 0xFF}},
		{"int32", ScalarField(int32(-0x100)), []byte{0x00, 0xFF, 0xFF, 0xFF}},
		{"named type", ScalarField(pmTimerBlock(0x0408)), []byte{0x08, 0x04}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, len(tc.want), tc.f.Size())
			got := make([]byte, tc.f.Size())
			tc.f.Put(got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScalarGenerics(t *testing.T) {
	table := newTestTable(t, HeaderSize)

	require.NoError(t, AppendScalar(table, pmTimerBlock(0x0408)))
	require.NoError(t, AppendScalar(table, int32(-1)))
	assert.Equal(t, []byte{0x08, 0x04, 0xFF, 0xFF, 0xFF, 0xFF}, table.Bytes()[HeaderSize:])

	require.NoError(t, WriteScalar(table, HeaderSize, int16(0x0102)))
	assert.Equal(t, []byte{0x02, 0x01}, table.Bytes()[HeaderSize:HeaderSize+2])

	err := WriteScalar(table, table.Len()-1, uint16(1))
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.True(t, table.Valid())
}

func TestChecksum(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
		want byte
	}{
		{"empty", nil, 0},
		{"single", []byte{1}, 0xFF},
		{"wraps", []byte{0xFF, 0x02}, 0xFF},
		{"already zero", []byte{0x80, 0x80}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Checksum(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, byte(0), Sum(append(tc.in, got)))
		})
	}
}
