// Package cpu implements the Sharp SM83 core of the DMG Game Boy.
// The CPU executes one instruction per Step against any
// types.AddressSpace, and reports how many clock cycles it took.
package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	// idleCycles are reported by Step while the CPU is halted or stopped.
	idleCycles = 4

	prefixCB = 0xCB
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT.
	ModeHalt
	// ModeStop is entered by STOP.
	ModeStop
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	bus    types.AddressSpace
	tracer Tracer
	log    log.Logger

	// ime is the interrupt master enable flag. It is tracked, but
	// interrupts are never dispatched.
	ime  bool
	mode mode
}

// Opt configures a CPU.
type Opt func(c *CPU)

// WithTracer sets the Tracer that receives an Event for every
// executed instruction.
func WithTracer(t Tracer) Opt {
	return func(c *CPU) {
		c.tracer = t
	}
}

// WithLogger sets the logger used by the CPU.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// NewCPU creates a new CPU in the post-boot state, executing from
// the given bus.
func NewCPU(bus types.AddressSpace, opts ...Opt) *CPU {
	c := &CPU{
		bus: bus,
		log: log.NewNullLogger(),
	}
	c.Registers.init()
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetTracer replaces the Tracer, nil disables tracing.
func (c *CPU) SetTracer(t Tracer) {
	c.tracer = t
}

// Reset returns the CPU to the post-boot state.
func (c *CPU) Reset() {
	c.Restore(BootState)
	c.ime = false
	c.mode = ModeNormal
}

// Step executes a single instruction and returns the number of
// clock cycles it took. When the opcode has no behaviour the
// registers are restored to their values before the fetch and an
// *UnimplementedOpcodeError is returned.
func (c *CPU) Step() (uint8, error) {
	if c.mode != ModeNormal {
		return idleCycles, nil
	}

	before := c.Snapshot()
	opcode := c.readOperand()
	instruction := InstructionSet[opcode]
	prefixed := opcode == prefixCB
	if prefixed {
		opcode = c.readOperand()
		instruction = InstructionSetCB[opcode]
	}

	if !instruction.Implemented() {
		c.Restore(before)
		c.log.Debugf("unimplemented opcode %02X at %04X (prefixed: %t)", opcode, before.PC, prefixed)
		return 0, &UnimplementedOpcodeError{Opcode: opcode, Prefixed: prefixed, PC: before.PC}
	}

	cycles := instruction.fn(c)
	if c.tracer != nil {
		c.tracer.Trace(Event{
			PC:        before.PC,
			Opcode:    opcode,
			Prefixed:  prefixed,
			Name:      instruction.name,
			Cycles:    cycles,
			Registers: c.Snapshot(),
		})
	}

	return cycles, nil
}

// Halted reports whether the CPU is halted or stopped.
func (c *CPU) Halted() bool {
	return c.mode != ModeNormal
}

// Wake resumes execution after HALT or STOP.
func (c *CPU) Wake() {
	c.mode = ModeNormal
}

// IME returns the interrupt master enable flag.
func (c *CPU) IME() bool {
	return c.ime
}

// readOperand reads the byte at PC and increments PC.
func (c *CPU) readOperand() uint8 {
	return c.FetchByte(c.bus)
}

// readOperand16 reads the little-endian word at PC and advances PC
// past it.
func (c *CPU) readOperand16() uint16 {
	return c.FetchWord(c.bus)
}

// readIndex reads the operand selected by index, where 6 reads the
// byte at HL.
func (c *CPU) readIndex(index Reg8) uint8 {
	if index == regHL {
		return c.bus.Read(c.HL.Uint16())
	}
	return c.registerIndex(index).Value()
}

// writeIndex writes the operand selected by index, where 6 writes
// the byte at HL.
func (c *CPU) writeIndex(index Reg8, value uint8) {
	if index == regHL {
		c.bus.Write(c.HL.Uint16(), value)
		return
	}
	c.registerIndex(index).Set(value)
}
