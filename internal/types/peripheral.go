package types

// AddressSpace is a byte addressable, 16-bit indexed block of
// memory. Words are stored little-endian, the low byte at the
// address and the high byte at the address + 1.
type AddressSpace interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	ReadWord(address uint16) uint16
	WriteWord(address uint16, value uint16)
}

// Device is a peripheral that can be attached to a region of the
// memory map, such as work RAM or, in the future, the PPU. Addresses
// passed to a Device are relative to the start of the region it is
// attached to.
type Device interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}
