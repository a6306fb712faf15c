package cartridge

import (
	"fmt"
	"strings"
	"unicode"
)

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	MBC2        Type = 0x05
	MBC2BATT    Type = 0x06
	ROMRAM      Type = 0x08
	ROMRAMBATT  Type = 0x09
	MBC3        Type = 0x11
	MBC5        Type = 0x19
)

var typeNames = map[Type]string{
	ROM:         "ROM",
	MBC1:        "MBC1",
	MBC1RAM:     "MBC1+RAM",
	MBC1RAMBATT: "MBC1+RAM+BATTERY",
	MBC2:        "MBC2",
	MBC2BATT:    "MBC2+BATTERY",
	ROMRAM:      "ROM+RAM",
	ROMRAMBATT:  "ROM+RAM+BATTERY",
	MBC3:        "MBC3",
	MBC5:        "MBC5",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(0x%02X)", uint8(t))
}

// Controller reports whether the cartridge needs a memory bank
// controller to map more than its first 32kB.
func (t Type) Controller() bool {
	switch t {
	case ROM, ROMRAM, ROMRAMBATT:
		return false
	}
	return true
}

const (
	titleStart  = 0x134
	titleEnd    = 0x143
	headerStart = 0x100
	headerEnd   = 0x150
)

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0142 - Title of the game
	Title string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	CartridgeType  Type
	ROMSize        uint
	RAMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16

	raw [headerEnd - headerStart]byte
}

// parseHeader parses the header of the given ROM image. The image must
// be at least headerEnd bytes long.
func parseHeader(rom []byte) Header {
	h := Header{}
	copy(h.raw[:], rom[headerStart:headerEnd])

	switch rom[0x143] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	h.Title = parseTitle(rom[titleStart:titleEnd])
	h.CartridgeType = Type(rom[0x147])

	// ROM size is calculated by 32kB x (1 << n)
	h.ROMSize = (32 * 1024) * (1 << (rom[0x148] & 0x0F))
	h.RAMSize = ramMAP[rom[0x149]]

	h.HeaderChecksum = rom[0x14D]
	h.GlobalChecksum = uint16(rom[0x14E])<<8 | uint16(rom[0x14F])

	return h
}

// parseTitle decodes the title bytes as text, trimming the trailing
// whitespace and NUL padding.
func parseTitle(b []byte) string {
	title := strings.ToValidUTF8(string(b), "?")
	return strings.TrimRightFunc(title, func(r rune) bool {
		return r == 0 || unicode.IsSpace(r)
	})
}

// HeaderChecksumValid reports whether the checksum stored at 0x014D
// matches the one computed over 0x0134-0x014C.
func (h *Header) HeaderChecksumValid() bool {
	var sum uint8
	for _, b := range h.raw[titleStart-headerStart : 0x14D-headerStart] {
		sum = sum - b - 1
	}
	return sum == h.HeaderChecksum
}

// GameboyColor reports whether the cartridge supports or requires the
// Colour Game Boy.
func (h *Header) GameboyColor() bool {
	return h.CartridgeGBMode == FlagOnlyCGB || h.CartridgeGBMode == FlagSupportsCGB
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
