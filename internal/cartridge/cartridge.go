// Package cartridge provides the game cartridge for the DMG. The
// cartridge holds the game ROM, and is mapped to 0x0000 - 0x7FFF.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// ErrMalformedROM is returned when a ROM image cannot be loaded, or is
// too small to contain a cartridge header.
var ErrMalformedROM = errors.New("malformed ROM")

// VisibleSize is the amount of ROM that is visible to the CPU without
// a memory bank controller.
const VisibleSize = 0x8000

// openBus is returned for reads beyond the end of the ROM image.
const openBus = 0xFF

// Cartridge represents a ROM only game cartridge. The ROM image is
// immutable once loaded, writes to it are ignored.
type Cartridge struct {
	rom      []byte
	header   Header
	checksum uint64
}

var _ types.AddressSpace = (*Cartridge)(nil)

// NewCartridge returns a new Cartridge holding a copy of the given ROM
// image.
func NewCartridge(rom []byte) (*Cartridge, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: image is %d bytes, need at least %d for the header", ErrMalformedROM, len(rom), headerEnd)
	}

	c := &Cartridge{
		rom: make([]byte, len(rom)),
	}
	copy(c.rom, rom)
	c.header = parseHeader(c.rom)
	c.checksum = xxhash.Sum64(c.rom)

	return c, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the title of the cartridge, stored at 0x0134 - 0x0142.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Checksum returns the xxhash digest of the ROM image, which can be used
// to identify a ROM regardless of its file name.
func (c *Cartridge) Checksum() uint64 {
	return c.checksum
}

// Size returns the size of the ROM image in bytes.
func (c *Cartridge) Size() int {
	return len(c.rom)
}

// Banked reports whether the image is larger than the 32kB the CPU can
// see without a memory bank controller.
func (c *Cartridge) Banked() bool {
	return len(c.rom) > VisibleSize
}

// Read returns the value at the given address.
func (c *Cartridge) Read(address uint16) uint8 {
	if int(address) < len(c.rom) {
		return c.rom[address]
	}
	return openBus
}

// Write is a no-op, the ROM cannot be written to.
func (c *Cartridge) Write(address uint16, value uint8) {}

// ReadWord returns the little-endian word at the given address.
func (c *Cartridge) ReadWord(address uint16) uint16 {
	return uint16(c.Read(address)) | uint16(c.Read(address+1))<<8
}

// WriteWord writes the word to the given address. As with Write, the
// value is discarded.
func (c *Cartridge) WriteWord(address uint16, value uint16) {
	c.Write(address, uint8(value))
	c.Write(address+1, uint8(value>>8))
}
