package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Reg8 identifies an 8-bit register. The values follow the operand
// encoding of the instruction set, where 6 selects (HL) instead of a
// register.
type Reg8 uint8

const (
	RegB Reg8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	regHL
	RegA
)

var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func (r Reg8) String() string {
	return reg8Names[r&7]
}

// Pair identifies a 16-bit register, or pair of 8-bit registers.
type Pair uint8

const (
	PairAF Pair = iota
	PairBC
	PairDE
	PairHL
	PairSP
	PairPC
)

var pairNames = [...]string{"AF", "BC", "DE", "HL", "SP", "PC"}

func (p Pair) String() string {
	if int(p) < len(pairNames) {
		return pairNames[p]
	}
	return fmt.Sprintf("Pair(%d)", uint8(p))
}

// RegisterPair is a 16-bit view over two 8-bit registers. It holds no
// state of its own, reading it always combines the current value of
// both registers.
type RegisterPair struct {
	High *types.Register[uint8]
	Low  *types.Register[uint8]
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return utils.BytesToUint16(r.High.Value(), r.Low.Value())
}

// SetUint16 sets the high register to the upper byte of value, and
// the low register to the lower byte.
func (r *RegisterPair) SetUint16(value uint16) {
	high, low := utils.Uint16ToBytes(value)
	r.High.Set(high)
	r.Low.Set(low)
}

// Registers represents the SM83 register file. F is held as Flags,
// and is only ever reached through them.
type Registers struct {
	A types.Register[uint8]
	B types.Register[uint8]
	C types.Register[uint8]
	D types.Register[uint8]
	E types.Register[uint8]
	H types.Register[uint8]
	L types.Register[uint8]
	F Flags

	// SP is the stack pointer, it points to the top of the stack.
	SP types.Register[uint16]
	// PC is the program counter, it points to the next byte to be fetched.
	PC types.Register[uint16]

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// NewRegisters returns a register file holding the values left by
// the DMG boot ROM.
func NewRegisters() *Registers {
	r := &Registers{}
	r.init()
	return r
}

// init creates the register pairs and sets the boot values. The
// pairs point into r, so a Registers must not be copied after init.
func (r *Registers) init() {
	r.BC = &RegisterPair{&r.B, &r.C}
	r.DE = &RegisterPair{&r.D, &r.E}
	r.HL = &RegisterPair{&r.H, &r.L}

	r.Restore(BootState)
}

// registerIndex returns the register for the given operand index.
func (r *Registers) registerIndex(index Reg8) *types.Register[uint8] {
	switch index {
	case RegA:
		return &r.A
	case RegB:
		return &r.B
	case RegC:
		return &r.C
	case RegD:
		return &r.D
	case RegE:
		return &r.E
	case RegH:
		return &r.H
	case RegL:
		return &r.L
	}
	panic(fmt.Sprintf("invalid register index: %d", index))
}

// Get8 returns the value of the given 8-bit register. It panics for the
// (HL) operand index, which names memory rather than a register.
func (r *Registers) Get8(reg Reg8) uint8 {
	return r.registerIndex(reg).Value()
}

// Set8 sets the value of the given 8-bit register. Like Get8, it panics
// for the (HL) operand index.
func (r *Registers) Set8(reg Reg8, value uint8) {
	r.registerIndex(reg).Set(value)
}

// Get16 returns the value of the given 16-bit register.
func (r *Registers) Get16(p Pair) uint16 {
	switch p {
	case PairAF:
		return utils.BytesToUint16(r.A.Value(), r.F.Value())
	case PairBC:
		return r.BC.Uint16()
	case PairDE:
		return r.DE.Uint16()
	case PairHL:
		return r.HL.Uint16()
	case PairSP:
		return r.SP.Value()
	case PairPC:
		return r.PC.Value()
	}
	panic(fmt.Sprintf("invalid register pair: %d", p))
}

// Set16 sets the value of the given 16-bit register. Setting AF
// discards the lower nibble of F.
func (r *Registers) Set16(p Pair, value uint16) {
	switch p {
	case PairAF:
		high, low := utils.Uint16ToBytes(value)
		r.A.Set(high)
		r.F.Set(low)
	case PairBC:
		r.BC.SetUint16(value)
	case PairDE:
		r.DE.SetUint16(value)
	case PairHL:
		r.HL.SetUint16(value)
	case PairSP:
		r.SP.Set(value)
	case PairPC:
		r.PC.Set(value)
	default:
		panic(fmt.Sprintf("invalid register pair: %d", p))
	}
}

// FetchByte returns the byte at PC and advances PC by 1.
func (r *Registers) FetchByte(bus types.AddressSpace) uint8 {
	value := bus.Read(r.PC.Value())
	r.PC.Inc()
	return value
}

// FetchWord returns the little-endian word at PC and advances PC
// past both bytes.
func (r *Registers) FetchWord(bus types.AddressSpace) uint16 {
	low := r.FetchByte(bus)
	high := r.FetchByte(bus)
	return utils.BytesToUint16(high, low)
}

// State is a plain copy of the register file.
type State struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
}

// BootState is the state of the registers after the DMG boot ROM
// has finished, immediately before the first cartridge instruction.
var BootState = State{
	A: 0x01, F: 0xB0,
	B: 0x00, C: 0x13,
	D: 0x00, E: 0xD8,
	H: 0x01, L: 0x4D,
	SP: 0xFFFE,
	PC: 0x0100,
}

// Snapshot returns a copy of the current register values.
func (r *Registers) Snapshot() State {
	return State{
		A: r.A.Value(), F: r.F.Value(),
		B: r.B.Value(), C: r.C.Value(),
		D: r.D.Value(), E: r.E.Value(),
		H: r.H.Value(), L: r.L.Value(),
		SP: r.SP.Value(),
		PC: r.PC.Value(),
	}
}

// Restore sets every register from s.
func (r *Registers) Restore(s State) {
	r.A.Set(s.A)
	r.F.Set(s.F)
	r.B.Set(s.B)
	r.C.Set(s.C)
	r.D.Set(s.D)
	r.E.Set(s.E)
	r.H.Set(s.H)
	r.L.Set(s.L)
	r.SP.Set(s.SP)
	r.PC.Set(s.PC)
}

func (s State) String() string {
	return fmt.Sprintf("A: %02x F: %02x B: %02x C: %02x D: %02x E: %02x H: %02x L: %02x SP: %04x PC: %04x",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.PC)
}
