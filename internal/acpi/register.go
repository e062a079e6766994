package acpi

import (
	"encoding/binary"
	"fmt"
)

// AddressSpace selects how a RegisterAddress is reached.
type AddressSpace uint8

const (
	SystemMemory       AddressSpace = 0
	SystemIO           AddressSpace = 1
	PCIConfig          AddressSpace = 2
	EmbeddedController AddressSpace = 3
	SMBus              AddressSpace = 4
	FunctionalFixedHW  AddressSpace = 0x7f
)

func (s AddressSpace) String() string {
	switch s {
	case SystemMemory:
		return "memory"
	case SystemIO:
		return "io"
	case PCIConfig:
		return "pci-config"
	case EmbeddedController:
		return "embedded-controller"
	case SMBus:
		return "smbus"
	case FunctionalFixedHW:
		return "ffh"
	default:
		return fmt.Sprintf("space(%#x)", uint8(s))
	}
}

// RegisterAddressSize is the packed wire size of a RegisterAddress.
const RegisterAddressSize = 12

// RegisterAddress describes where a hardware register lives. It is a plain
// value; build it with MemoryMapped or PortMapped.
type RegisterAddress struct {
	Space      AddressSpace
	BitWidth   uint8
	BitOffset  uint8
	AccessSize uint8
	Address    uint64
}

// Width is the set of register storage types. Its size sets both the bit
// width and the access size of a RegisterAddress.
type Width interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// MemoryMapped describes a T-sized register at a physical address.
func MemoryMapped[T Width](address uint64) RegisterAddress {
	return newRegisterAddress[T](SystemMemory, address)
}

// PortMapped describes a T-sized register at an I/O port.
func PortMapped[T Width](port uint16) RegisterAddress {
	return newRegisterAddress[T](SystemIO, uint64(port))
}

func newRegisterAddress[T Width](space AddressSpace, address uint64) RegisterAddress {
	var v T
	size := uint8(binary.Size(v))
	return RegisterAddress{
		Space:      space,
		BitWidth:   8 * size,
		BitOffset:  0,
		AccessSize: size,
		Address:    address,
	}
}

func (r RegisterAddress) Size() int {
	return RegisterAddressSize
}

// Put encodes r packed, with no padding before the address.
func (r RegisterAddress) Put(dst []byte) {
	dst[0] = uint8(r.Space)
	dst[1] = r.BitWidth
	dst[2] = r.BitOffset
	dst[3] = r.AccessSize
	binary.LittleEndian.PutUint64(dst[4:RegisterAddressSize], r.Address)
}

func (r RegisterAddress) String() string {
	return fmt.Sprintf("%s:%d@%#x", r.Space, r.BitWidth, r.Address)
}
