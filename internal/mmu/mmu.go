// Package mmu provides a memory management unit for the Game Boy. The
// MMU is unaware of the other components, and routes every read and
// write to the device attached to the region the address falls in.
package mmu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// ErrRegionFixed is returned when attaching a device to a region whose
// backing cannot change.
var ErrRegionFixed = errors.New("region cannot be attached")

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory. Regions
// without an attached device are inert: reads return the open bus
// value and writes are discarded.
type MMU struct {
	// 64kB address space
	raw [0x10000]*types.Address

	addresses [regionCount]types.Address
	devices   [regionCount]types.Device

	// 0x0000 - 0x7FFF - ROM (32kB)
	cart types.Device

	openBus uint8

	Log log.Logger
}

var _ types.AddressSpace = (*MMU)(nil)

// Opt configures an MMU.
type Opt func(m *MMU)

// WithOpenBus sets the value returned when reading from a region
// without an attached device.
func WithOpenBus(v uint8) Opt {
	return func(m *MMU) {
		m.openBus = v
	}
}

// WithLogger sets the logger used by the MMU.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.Log = l
	}
}

// NewMMU returns a new MMU with the cartridge mapped to the ROM region
// and every other region inert.
func NewMMU(cart types.Device, opts ...Opt) *MMU {
	m := &MMU{
		cart: cart,
		Log:  log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	for r := Region(0); r < regionCount; r++ {
		start, end := r.Bounds()
		for i := uint32(start); i <= uint32(end); i++ {
			m.raw[i] = &m.addresses[r]
		}
	}
	m.init()

	return m
}

// init (re)builds the handler of every region from the attached devices.
func (m *MMU) init() {
	m.addresses[ROM] = types.Address{Read: m.cart.Read, Write: m.cart.Write}

	for r := VRAM; r < regionCount; r++ {
		if r == Echo {
			continue
		}
		if dev := m.devices[r]; dev != nil {
			start, _ := r.Bounds()
			m.addresses[r] = types.Address{
				Read:  readOffset(dev.Read, start),
				Write: writeOffset(dev.Write, start),
			}
		} else {
			m.addresses[r] = m.inert()
		}
	}

	// echo RAM mirrors WRAM, 0xE000 reads 0xC000
	m.addresses[Echo] = m.inert()
	if wram := m.devices[WRAM]; wram != nil {
		m.addresses[Echo] = types.Address{
			Read:  readOffset(wram.Read, types.EchoStart),
			Write: writeOffset(wram.Write, types.EchoStart),
		}
	}
}

func (m *MMU) inert() types.Address {
	return types.Address{
		Read: func(uint16) uint8 {
			return m.openBus
		},
		Write: func(uint16, uint8) {},
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-offset, v)
	}
}

// Attach attaches the device to the given region. The ROM region always
// belongs to the cartridge, the unusable region is always inert, and
// echo RAM follows whatever is attached to WRAM.
func (m *MMU) Attach(r Region, dev types.Device) error {
	switch r {
	case ROM, Unusable, Echo:
		return fmt.Errorf("%w: %s", ErrRegionFixed, r)
	}
	if r >= regionCount {
		return fmt.Errorf("%w: %s", ErrRegionFixed, r)
	}

	m.devices[r] = dev
	m.init()
	m.Log.Debugf("attached %T to %s", dev, r)

	return nil
}

// Detach returns the region to its inert state.
func (m *MMU) Detach(r Region) {
	if r >= regionCount || m.devices[r] == nil {
		return
	}

	m.devices[r] = nil
	m.init()
	m.Log.Debugf("detached %s", r)
}

// Attached reports whether a device is attached to the region. ROM is
// always attached.
func (m *MMU) Attached(r Region) bool {
	switch r {
	case ROM:
		return true
	case Echo:
		return m.devices[WRAM] != nil
	}
	return r < regionCount && m.devices[r] != nil
}

// PowerUp writes the values the boot ROM leaves in the hardware
// registers. Writes to registers without an attached device are
// discarded as usual.
func (m *MMU) PowerUp() {
	for _, reg := range types.PowerUpValues {
		m.Write(reg.Address, reg.Value)
	}
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].Write(address, value)
}

// ReadWord returns the little-endian word at the given address. The
// second byte is read from address + 1, wrapping at 0xFFFF.
func (m *MMU) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// WriteWord writes the word to the given address, low byte first.
func (m *MMU) WriteWord(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}
