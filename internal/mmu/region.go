package mmu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Region identifies one of the fixed areas of the 16-bit memory map.
type Region uint8

const (
	// ROM is 0x0000 - 0x7FFF, backed by the cartridge.
	ROM Region = iota
	// VRAM is 0x8000 - 0x9FFF.
	VRAM
	// ExtRAM is 0xA000 - 0xBFFF, the switchable cartridge RAM.
	ExtRAM
	// WRAM is 0xC000 - 0xDFFF.
	WRAM
	// Echo is 0xE000 - 0xFDFF, a mirror of WRAM.
	Echo
	// OAM is 0xFE00 - 0xFE9F, the sprite attribute table.
	OAM
	// Unusable is 0xFEA0 - 0xFEFF, and is always inert.
	Unusable
	// IO is 0xFF00 - 0xFF7F, the hardware registers.
	IO
	// HRAM is 0xFF80 - 0xFFFE.
	HRAM
	// IE is the interrupt enable register at 0xFFFF.
	IE

	regionCount
)

var regions = [regionCount]struct {
	name       string
	start, end uint16
}{
	ROM:      {"ROM", types.ROMStart, types.ROMEnd},
	VRAM:     {"VRAM", types.VRAMStart, types.VRAMEnd},
	ExtRAM:   {"External RAM", types.ExtRAMStart, types.ExtRAMEnd},
	WRAM:     {"WRAM", types.WRAMStart, types.WRAMEnd},
	Echo:     {"Echo RAM", types.EchoStart, types.EchoEnd},
	OAM:      {"OAM", types.OAMStart, types.OAMEnd},
	Unusable: {"Unusable", types.UnusableStart, types.UnusableEnd},
	IO:       {"I/O", types.IOStart, types.IOEnd},
	HRAM:     {"HRAM", types.HRAMStart, types.HRAMEnd},
	IE:       {"IE", types.IE, types.IE},
}

func (r Region) String() string {
	if r >= regionCount {
		return fmt.Sprintf("Region(%d)", uint8(r))
	}
	return regions[r].name
}

// Bounds returns the first and last address of the region.
func (r Region) Bounds() (start, end uint16) {
	return regions[r].start, regions[r].end
}

// Size returns the number of addresses covered by the region.
func (r Region) Size() uint32 {
	return uint32(regions[r].end-regions[r].start) + 1
}

// RegionOf returns the region the address belongs to.
func RegionOf(address uint16) Region {
	switch {
	case address <= types.ROMEnd:
		return ROM
	case address <= types.VRAMEnd:
		return VRAM
	case address <= types.ExtRAMEnd:
		return ExtRAM
	case address <= types.WRAMEnd:
		return WRAM
	case address <= types.EchoEnd:
		return Echo
	case address <= types.OAMEnd:
		return OAM
	case address <= types.UnusableEnd:
		return Unusable
	case address <= types.IOEnd:
		return IO
	case address <= types.HRAMEnd:
		return HRAM
	default:
		return IE
	}
}
