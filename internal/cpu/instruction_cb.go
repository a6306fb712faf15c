package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// rotateLeft rotates n left, copying bit 7 into bit 0 and the carry.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n uint8) uint8 {
	result := n<<1 | n>>7
	c.setFlags(result == 0, false, false, n&types.Bit7 != 0)
	return result
}

// rotateRight rotates n right, copying bit 0 into bit 7 and the carry.
func (c *CPU) rotateRight(n uint8) uint8 {
	result := n>>1 | n<<7
	c.setFlags(result == 0, false, false, n&types.Bit0 != 0)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n << 1
	if c.F.Carry {
		result |= types.Bit0
	}
	c.setFlags(result == 0, false, false, n&types.Bit7 != 0)
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n >> 1
	if c.F.Carry {
		result |= types.Bit7
	}
	c.setFlags(result == 0, false, false, n&types.Bit0 != 0)
	return result
}

// shiftLeftArithmetic shifts n left into the carry, bit 0 is reset.
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	result := n << 1
	c.setFlags(result == 0, false, false, n&types.Bit7 != 0)
	return result
}

// shiftRightArithmetic shifts n right into the carry, bit 7 is kept.
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	result := n>>1 | n&types.Bit7
	c.setFlags(result == 0, false, false, n&types.Bit0 != 0)
	return result
}

// shiftRightLogical shifts n right into the carry, bit 7 is reset.
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result := n >> 1
	c.setFlags(result == 0, false, false, n&types.Bit0 != 0)
	return result
}

// swap the upper and lower nibbles of n.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	result := n<<4 | n>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit tests bit b of n, leaving C untouched.
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
func (c *CPU) testBit(n uint8, b uint8) {
	c.setFlags(!utils.TestBit(n, b), false, true, c.F.Carry)
}

// bitIndex returns the bit operated on by a BIT, RES or SET opcode
// in the block starting at base.
func bitIndex(opcode, base uint8) uint8 {
	return (opcode - base) / 8
}

var shiftOperations = [8]struct {
	name string
	fn   func(*CPU, uint8) uint8
}{
	{"RLC", (*CPU).rotateLeft},
	{"RRC", (*CPU).rotateRight},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

// generateShiftInstructions defines 0x00 - 0x3F, the rotates, shifts
// and swap for each register (B, C, D, E, H, L, (HL), A).
func generateShiftInstructions() {
	for op, operation := range shiftOperations {
		for index := Reg8(0); index < 8; index++ {
			index, fn := index, operation.fn
			cycles := uint8(8)
			if index == regHL {
				cycles = 16
			}
			DefineInstructionCB(uint8(op)<<3+uint8(index), fmt.Sprintf("%s %s", operation.name, index), func(c *CPU) uint8 {
				c.writeIndex(index, fn(c, c.readIndex(index)))
				return cycles
			})
		}
	}
}

// generateBitInstructions defines 0x40 - 0xFF, BIT, RES and SET for
// each bit of each register.
func generateBitInstructions() {
	for opcode := 0x40; opcode <= 0xFF; opcode++ {
		opcode := uint8(opcode)
		index := Reg8(opcode & 7)
		cycles := uint8(8)
		if index == regHL {
			cycles = 16
		}

		switch {
		case opcode < 0x80:
			b := bitIndex(opcode, 0x40)
			DefineInstructionCB(opcode, fmt.Sprintf("BIT %d, %s", b, index), func(c *CPU) uint8 {
				c.testBit(c.readIndex(index), b)
				return cycles
			})
		case opcode < 0xC0:
			b := bitIndex(opcode, 0x80)
			DefineInstructionCB(opcode, fmt.Sprintf("RES %d, %s", b, index), func(c *CPU) uint8 {
				c.writeIndex(index, utils.ClearBit(c.readIndex(index), b))
				return cycles
			})
		default:
			b := bitIndex(opcode, 0xC0)
			DefineInstructionCB(opcode, fmt.Sprintf("SET %d, %s", b, index), func(c *CPU) uint8 {
				c.writeIndex(index, utils.SetBit(c.readIndex(index), b))
				return cycles
			})
		}
	}
}

func init() {
	generateShiftInstructions()
	generateBitInstructions()
}
