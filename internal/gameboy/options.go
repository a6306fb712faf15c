package gameboy

import (
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its components are created.
type Opt func(gb *GameBoy)

// Debug logs every executed instruction at debug level.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// WithLogger sets the logger used by the GameBoy and its components.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithTracer passes every executed instruction to t.
func WithTracer(t cpu.Tracer) Opt {
	return func(gb *GameBoy) {
		gb.tracers = append(gb.tracers, t)
	}
}

// WithoutRAM leaves Work RAM and High RAM unattached, so the only
// memory the CPU can see is the cartridge.
func WithoutRAM() Opt {
	return func(gb *GameBoy) {
		gb.withoutRAM = true
	}
}

// WithOpenBus sets the value read from unattached regions.
func WithOpenBus(v uint8) Opt {
	return func(gb *GameBoy) {
		gb.openBus = v
	}
}

// WithCycleBudget stops Run once at least cycles clock cycles have
// been executed in total. 0 means no limit.
func WithCycleBudget(cycles uint64) Opt {
	return func(gb *GameBoy) {
		gb.budget = cycles
	}
}
