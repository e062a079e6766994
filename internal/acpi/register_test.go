package acpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAddress_Factories(t *testing.T) {
	t.Run("memory mapped u32", func(t *testing.T) {
		r := MemoryMapped[uint32](0x1000)

		assert.Equal(t, SystemMemory, r.Space)
		assert.Equal(t, uint8(32), r.BitWidth)
		assert.Equal(t, uint8(0), r.BitOffset)
		assert.Equal(t, uint8(4), r.AccessSize)
		assert.Equal(t, uint64(0x1000), r.Address)
	})

	t.Run("port mapped u8", func(t *testing.T) {
		r := PortMapped[uint8](0x0400)

		assert.Equal(t, SystemIO, r.Space)
		assert.Equal(t, uint8(8), r.BitWidth)
		assert.Equal(t, uint8(0), r.BitOffset)
		assert.Equal(t, uint8(1), r.AccessSize)
		assert.Equal(t, uint64(0x0400), r.Address)
	})

	t.Run("width follows storage type", func(t *testing.T) {
		testCases := []struct {
			name       string
			r          RegisterAddress
			bitWidth   uint8
			accessSize uint8
		}{
			{"u8", MemoryMapped[uint8](0), 8, 1},
			{"u16", MemoryMapped[uint16](0), 16, 2},
			{"u32", PortMapped[uint32](0), 32, 4},
			{"u64", MemoryMapped[uint64](0), 64, 8},
			{"named", PortMapped[pmTimerBlock](0), 16, 2},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.bitWidth, tc.r.BitWidth)
				assert.Equal(t, tc.accessSize, tc.r.AccessSize)
				assert.Equal(t, uint8(tc.bitWidth/8), tc.r.AccessSize)
			})
		}
	})

	t.Run("high memory address is kept whole", func(t *testing.T) {
		r := MemoryMapped[uint64](0xFED0_0000_0000_1000)
		assert.Equal(t, uint64(0xFED0_0000_0000_1000), r.Address)
	})
}

func TestRegisterAddress_Put(t *testing.T) {
	r := MemoryMapped[uint32](0x1122334455667788)

	buf := make([]byte, r.Size())
	r.Put(buf)

	want := []byte{
		0x00, 32, 0, 4,
		0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11,
	}
	assert.Equal(t, want, buf)
}

func TestRegisterAddress_WriteIntoTable(t *testing.T) {
	table := newTestTable(t, HeaderSize+RegisterAddressSize)

	require.NoError(t, table.WriteField(HeaderSize, PortMapped[uint8](0x0400)))

	want := []byte{0x01, 8, 0, 1, 0x00, 0x04, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, want, table.Bytes()[HeaderSize:])
	assert.True(t, table.Valid())

	err := table.WriteField(HeaderSize+1, PortMapped[uint8](0x0400))
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestAddressSpace_String(t *testing.T) {
	assert.Equal(t, "memory", SystemMemory.String())
	assert.Equal(t, "io", SystemIO.String())
	assert.Equal(t, "space(0x9)", AddressSpace(9).String())
	assert.Equal(t, "io:8@0x400", PortMapped[uint8](0x400).String())
}
