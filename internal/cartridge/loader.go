package cartridge

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Load reads the ROM image from filename, decompressing it if
// necessary, and returns a new Cartridge.
func Load(filename string, logger log.Logger) (*Cartridge, error) {
	rom, err := utils.LoadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedROM, filename, err)
	}

	c, err := NewCartridge(rom)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	h := c.Header()
	logger.Infof("loaded %s (%016x)", h.String(), c.Checksum())
	if !h.HeaderChecksumValid() {
		logger.Warnf("header checksum mismatch for %s", filename)
	}
	if h.CartridgeType.Controller() {
		logger.Warnf("%s needs an unsupported %s controller", filename, h.CartridgeType)
	}
	if h.GameboyColor() {
		logger.Warnf("%s is a %s cartridge, running in DMG mode", filename, h.Hardware())
	}
	if c.Banked() {
		logger.Warnf("%s is %dkB, only the first %dkB are mapped", filename, c.Size()/1024, VisibleSize/1024)
	}

	return c, nil
}
