package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// registerPairs are the 16-bit operands of LD rr, INC rr, DEC rr and
// ADD HL, rr, in encoding order.
var registerPairs = [4]Pair{PairBC, PairDE, PairHL, PairSP}

// pointerStep is applied to HL after an indirect load through it.
type pointerStep int8

const (
	stepNone      pointerStep = 0
	stepIncrement pointerStep = 1
	stepDecrement pointerStep = -1
)

// indirectOperands are the pointers used by the LD (rr), A and
// LD A, (rr) forms, in encoding order.
var indirectOperands = [4]struct {
	pair Pair
	step pointerStep
	name string
}{
	{PairBC, stepNone, "(BC)"},
	{PairDE, stepNone, "(DE)"},
	{PairHL, stepIncrement, "(HL+)"},
	{PairHL, stepDecrement, "(HL-)"},
}

// loadIndirect returns the byte pointed to by p, then steps p.
func (c *CPU) loadIndirect(p Pair, step pointerStep) uint8 {
	address := c.Get16(p)
	value := c.bus.Read(address)
	c.Set16(p, address+uint16(step))
	return value
}

// storeIndirect writes value to the byte pointed to by p, then
// steps p.
func (c *CPU) storeIndirect(p Pair, step pointerStep, value uint8) {
	address := c.Get16(p)
	c.bus.Write(address, value)
	c.Set16(p, address+uint16(step))
}

// ioAddress returns the address of offset within the I/O page.
func ioAddress(offset uint8) uint16 {
	return types.IOPage | uint16(offset)
}

func init() {
	// 0x40 - 0x7F - LD r, r'
	for dst := Reg8(0); dst < 8; dst++ {
		for src := Reg8(0); src < 8; src++ {
			if dst == regHL && src == regHL {
				continue // HALT
			}
			dst, src := dst, src
			cycles := uint8(4)
			if dst == regHL || src == regHL {
				cycles = 8
			}
			DefineInstruction(0x40+uint8(dst)<<3+uint8(src), fmt.Sprintf("LD %s, %s", dst, src), func(c *CPU) uint8 {
				c.writeIndex(dst, c.readIndex(src))
				return cycles
			})
		}

		// 0x06, 0x0E ... 0x3E - LD r, d8
		dst := dst
		cycles := uint8(8)
		if dst == regHL {
			cycles = 12
		}
		DefineInstruction(0x06+uint8(dst)<<3, fmt.Sprintf("LD %s, d8", dst), func(c *CPU) uint8 {
			c.writeIndex(dst, c.readOperand())
			return cycles
		})
	}

	// 0x01, 0x11, 0x21, 0x31 - LD rr, d16
	for i, pair := range registerPairs {
		pair := pair
		DefineInstruction(0x01+uint8(i)<<4, fmt.Sprintf("LD %s, d16", pair), func(c *CPU) uint8 {
			c.Set16(pair, c.readOperand16())
			return 12
		})
	}

	// 0x02, 0x12, 0x22, 0x32 - LD (rr), A
	// 0x0A, 0x1A, 0x2A, 0x3A - LD A, (rr)
	for i, operand := range indirectOperands {
		operand := operand
		DefineInstruction(0x02+uint8(i)<<4, fmt.Sprintf("LD %s, A", operand.name), func(c *CPU) uint8 {
			c.storeIndirect(operand.pair, operand.step, c.A.Value())
			return 8
		})
		DefineInstruction(0x0A+uint8(i)<<4, fmt.Sprintf("LD A, %s", operand.name), func(c *CPU) uint8 {
			c.A.Set(c.loadIndirect(operand.pair, operand.step))
			return 8
		})
	}

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) uint8 {
		c.bus.WriteWord(c.readOperand16(), c.SP.Value())
		return 20
	})
	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) uint8 {
		c.bus.Write(ioAddress(c.readOperand()), c.A.Value())
		return 12
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) uint8 {
		c.A.Set(c.bus.Read(ioAddress(c.readOperand())))
		return 12
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) uint8 {
		c.bus.Write(ioAddress(c.C.Value()), c.A.Value())
		return 8
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) uint8 {
		c.A.Set(c.bus.Read(ioAddress(c.C.Value())))
		return 8
	})
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) uint8 {
		c.bus.Write(c.readOperand16(), c.A.Value())
		return 16
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) uint8 {
		c.A.Set(c.bus.Read(c.readOperand16()))
		return 16
	})
	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) uint8 {
		c.HL.SetUint16(c.addSPSigned())
		return 12
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) uint8 {
		c.SP.Set(c.HL.Uint16())
		return 8
	})
}
