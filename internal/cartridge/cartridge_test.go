package cartridge

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// newROM returns a 32kB ROM image with the given title and a valid
// header checksum.
func newROM(title string) []byte {
	rom := make([]byte, VisibleSize)
	copy(rom[titleStart:titleEnd], title)
	var sum uint8
	for _, b := range rom[titleStart:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

// setHeader sets the header byte at address and fixes up the header
// checksum.
func setHeader(rom []byte, address uint16, v byte) []byte {
	rom[address] = v
	var sum uint8
	for _, b := range rom[titleStart:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

func TestType(t *testing.T) {
	tests := []struct {
		typ        Type
		name       string
		controller bool
	}{
		{ROM, "ROM", false},
		{ROMRAM, "ROM+RAM", false},
		{ROMRAMBATT, "ROM+RAM+BATTERY", false},
		{MBC1, "MBC1", true},
		{MBC1RAM, "MBC1+RAM", true},
		{MBC1RAMBATT, "MBC1+RAM+BATTERY", true},
		{MBC2, "MBC2", true},
		{MBC2BATT, "MBC2+BATTERY", true},
		{MBC3, "MBC3", true},
		{MBC5, "MBC5", true},
		{Type(0xFC), "Type(0xFC)", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.typ.String())
		assert.Equal(t, tt.controller, tt.typ.Controller(), tt.name)
	}
}

func TestNewCartridge(t *testing.T) {
	t.Run("too small", func(t *testing.T) {
		_, err := NewCartridge(make([]byte, 0x140))
		assert.ErrorIs(t, err, ErrMalformedROM)
	})
	t.Run("header", func(t *testing.T) {
		c, err := NewCartridge(newROM("TETRIS"))
		require.NoError(t, err)

		h := c.Header()
		assert.Equal(t, "TETRIS", c.Title())
		assert.Equal(t, ROM, h.CartridgeType)
		assert.Equal(t, "DMG", h.Hardware())
		assert.True(t, h.HeaderChecksumValid())
		assert.False(t, c.Banked())
	})
	t.Run("copies image", func(t *testing.T) {
		rom := newROM("COPY")
		c, err := NewCartridge(rom)
		require.NoError(t, err)

		rom[0x0100] = 0xC3
		assert.Equal(t, uint8(0x00), c.Read(0x0100))
	})
}

func TestCartridge_Title(t *testing.T) {
	for name, tc := range map[string]struct {
		raw  string
		want string
	}{
		"trailing spaces": {"POKEMON RED    ", "POKEMON RED"},
		"nul padding":     {"ZELDA\x00\x00\x00", "ZELDA"},
		"full width":      {"ABCDEFGHIJKLMNO", "ABCDEFGHIJKLMNO"},
		"inner spaces":    {"SUPER MARIOLAND", "SUPER MARIOLAND"},
	} {
		t.Run(name, func(t *testing.T) {
			c, err := NewCartridge(newROM(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Title())
		})
	}
}

func TestCartridge_AddressSpace(t *testing.T) {
	rom := newROM("WORDS")
	rom[0x0150] = 0x34
	rom[0x0151] = 0x12
	c, err := NewCartridge(rom)
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1234), c.ReadWord(0x0150))

	c.Write(0x0150, 0xFF)
	c.WriteWord(0x0150, 0xBEEF)
	assert.Equal(t, uint8(0x34), c.Read(0x0150), "ROM should not be writable")

	// reads beyond the image are open bus
	assert.Equal(t, uint8(0xFF), c.Read(0x9000))
}

func TestCartridge_Checksum(t *testing.T) {
	a, err := NewCartridge(newROM("A"))
	require.NoError(t, err)
	b, err := NewCartridge(newROM("B"))
	require.NoError(t, err)
	a2, err := NewCartridge(newROM("A"))
	require.NoError(t, err)

	assert.Equal(t, a.Checksum(), a2.Checksum())
	assert.NotEqual(t, a.Checksum(), b.Checksum())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write(newROM("GZIPPED"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		name := filepath.Join(dir, "gzipped.gb.gz")
		require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o644))

		c, err := Load(name, log.NewNullLogger())
		require.NoError(t, err)
		assert.Equal(t, "GZIPPED", c.Title())
	})
	t.Run("warnings", func(t *testing.T) {
		tests := []struct {
			name    string
			rom     []byte
			warning string
		}{
			{"controller", setHeader(newROM("BANKED"), 0x147, uint8(MBC1)), "unsupported MBC1 controller"},
			{"colour", setHeader(newROM("COLOUR"), 0x143, 0x80), "is a CGB cartridge"},
			{"colour only", setHeader(newROM("COLOUR"), 0x143, 0xC0), "is a CGB cartridge"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				name := filepath.Join(dir, tt.name+".gb")
				require.NoError(t, os.WriteFile(name, tt.rom, 0o644))

				var buf bytes.Buffer
				_, err := Load(name, log.New(log.WithOutput(&buf)))
				require.NoError(t, err)
				assert.Contains(t, buf.String(), tt.warning)
				assert.NotContains(t, buf.String(), "checksum mismatch")
			})
		}
	})
	t.Run("no warnings", func(t *testing.T) {
		name := filepath.Join(dir, "plain.gb")
		require.NoError(t, os.WriteFile(name, setHeader(newROM("PLAIN"), 0x147, uint8(ROMRAMBATT)), 0o644))

		var buf bytes.Buffer
		_, err := Load(name, log.New(log.WithOutput(&buf)))
		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "level=warning")
	})
	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.gb"), log.NewNullLogger())
		assert.ErrorIs(t, err, ErrMalformedROM)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("truncated", func(t *testing.T) {
		name := filepath.Join(dir, "truncated.gb")
		require.NoError(t, os.WriteFile(name, make([]byte, 0x20), 0o644))

		_, err := Load(name, log.NewNullLogger())
		assert.ErrorIs(t, err, ErrMalformedROM)
	})
}
