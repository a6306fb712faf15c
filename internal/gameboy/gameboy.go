// Package gameboy provides an emulation of the Nintendo Game Boy CPU,
// wired to its cartridge and memory map.
package gameboy

import (
	"context"
	"errors"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ram"
	"github.com/thelolagemann/dmgcore/pkg/emulator"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz

	// contextCheckInterval is the number of instructions Run executes
	// between checks of its context.
	contextCheckInterval = 1024
)

// GameBoy represents a Game Boy. It owns the cartridge, the memory
// map and the CPU, and is the main entry point for the emulator.
type GameBoy struct {
	CPU       *cpu.CPU
	MMU       *mmu.MMU
	Cartridge *cartridge.Cartridge

	log.Logger

	debug      bool
	tracers    []cpu.Tracer
	withoutRAM bool
	openBus    uint8
	budget     uint64

	cycles uint64
	status emulator.Status
	err    error
}

var _ emulator.Controller = (*GameBoy)(nil)

// NewGameBoy returns a new GameBoy running the given ROM image.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.NewCartridge(rom)
	if err != nil {
		return nil, err
	}

	return NewFromCartridge(cart, opts...), nil
}

// NewFromCartridge returns a new GameBoy running the given cartridge.
func NewFromCartridge(cart *cartridge.Cartridge, opts ...Opt) *GameBoy {
	g := &GameBoy{
		Cartridge: cart,
		Logger:    log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.MMU = mmu.NewMMU(cart, mmu.WithOpenBus(g.openBus), mmu.WithLogger(g.Logger))
	if !g.withoutRAM {
		// the regions are never fixed, so attaching cannot fail
		_ = g.MMU.Attach(mmu.WRAM, ram.NewRAM(mmu.WRAM.Size()))
		_ = g.MMU.Attach(mmu.HRAM, ram.NewRAM(mmu.HRAM.Size()))
	}
	g.MMU.PowerUp()

	tracers := g.tracers
	if g.debug {
		tracers = append(tracers, cpu.LogTracer(g.Logger))
	}
	var tracer cpu.Tracer
	switch len(tracers) {
	case 0:
	case 1:
		tracer = tracers[0]
	default:
		tracer = cpu.MultiTracer(tracers...)
	}
	g.CPU = cpu.NewCPU(g.MMU, cpu.WithTracer(tracer), cpu.WithLogger(g.Logger))

	return g
}

// Step executes a single instruction.
func (g *GameBoy) Step() (uint8, error) {
	if g.status == emulator.Errored {
		return 0, g.err
	}

	cycles, err := g.CPU.Step()
	g.cycles += uint64(cycles)
	if err != nil {
		g.status = emulator.Errored
		g.err = err

		var unimplemented *cpu.UnimplementedOpcodeError
		if errors.As(err, &unimplemented) {
			g.Errorf("%s after %d cycles", unimplemented, g.cycles)
		} else {
			g.Errorf("step failed: %v", err)
		}
		return cycles, err
	}
	if g.CPU.Halted() {
		g.status = emulator.Halted
	}

	return cycles, nil
}

// Run executes instructions until the context is done, the CPU halts,
// the cycle budget is spent or an instruction fails. Nothing can wake
// a halted CPU, so Run returns as soon as it halts. The number of
// cycles executed by this call is returned.
func (g *GameBoy) Run(ctx context.Context) (uint64, error) {
	start := g.cycles
	for i := 0; ; i++ {
		if i%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return g.cycles - start, err
			}
		}
		if g.status != emulator.Running {
			break
		}
		if g.budget > 0 && g.cycles >= g.budget {
			g.Debugf("cycle budget of %d spent", g.budget)
			break
		}
		if _, err := g.Step(); err != nil {
			return g.cycles - start, err
		}
	}

	if g.status == emulator.Halted {
		g.Infof("halted at %04X after %d cycles", g.CPU.PC.Value(), g.cycles)
	}
	return g.cycles - start, g.err
}

// Reset returns the CPU and the hardware registers to their power-up
// state. Work RAM is left as is.
func (g *GameBoy) Reset() {
	g.CPU.Reset()
	g.MMU.PowerUp()
	g.cycles = 0
	g.status = emulator.Running
	g.err = nil
}

// Status returns the run status of the CPU.
func (g *GameBoy) Status() emulator.Status {
	return g.status
}

// Cycles returns the number of clock cycles executed since power-up.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Err returns the error that stopped the CPU, if any.
func (g *GameBoy) Err() error {
	return g.err
}
