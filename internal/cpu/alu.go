package cpu

import "fmt"

var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

// alu performs the arithmetic or logic operation selected by op,
// in the order of the 0x80 - 0xBF block, with A and n.
func (c *CPU) alu(op uint8, n uint8) {
	switch op {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.sub(n, false)
	case 3:
		c.sub(n, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	case 7:
		c.compare(n)
	}
}

// add n + carry (if shouldCarry) to A.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, shouldCarry bool) {
	var carry uint8
	if shouldCarry && c.F.Carry {
		carry = 1
	}
	a := c.A.Value()
	sum := uint16(a) + uint16(n) + uint16(carry)

	c.setFlags(uint8(sum) == 0, false, (a&0xF)+(n&0xF)+carry > 0xF, sum > 0xFF)
	c.A.Set(uint8(sum))
}

// subtract8 returns a - b - carry wrapped to 8 bits, along with
// whether it borrowed from bit 8 and from bit 4.
func subtract8(a, b, carry uint8) (result uint8, borrow, halfBorrow bool) {
	result = a - b - carry
	borrow = uint16(a) < uint16(b)+uint16(carry)
	halfBorrow = a&0xF < b&0xF+carry
	return
}

// sub n + carry (if shouldCarry) from A.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set if no borrow.
func (c *CPU) sub(n uint8, shouldCarry bool) {
	var carry uint8
	if shouldCarry && c.F.Carry {
		carry = 1
	}
	result, borrow, halfBorrow := subtract8(c.A.Value(), n, carry)

	c.setFlags(result == 0, true, halfBorrow, borrow)
	c.A.Set(result)
}

// compare A with n, setting the flags as sub would without
// changing A.
func (c *CPU) compare(n uint8) {
	result, borrow, halfBorrow := subtract8(c.A.Value(), n, 0)
	c.setFlags(result == 0, true, halfBorrow, borrow)
}

// and n with A, storing the result in A.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A.Set(c.A.Value() & n)
	c.setFlags(c.A.Value() == 0, false, true, false)
}

// or n with A, storing the result in A.
func (c *CPU) or(n uint8) {
	c.A.Set(c.A.Value() | n)
	c.setFlags(c.A.Value() == 0, false, false, false)
}

// xor n with A, storing the result in A.
func (c *CPU) xor(n uint8) {
	c.A.Set(c.A.Value() ^ n)
	c.setFlags(c.A.Value() == 0, false, false, false)
}

// increment n, leaving C untouched.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
func (c *CPU) increment(n uint8) uint8 {
	result := n + 1
	c.setFlags(result == 0, false, n&0xF == 0xF, c.F.Carry)
	return result
}

// decrement n, leaving C untouched.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
func (c *CPU) decrement(n uint8) uint8 {
	result := n - 1
	c.setFlags(result == 0, true, n&0xF == 0, c.F.Carry)
	return result
}

// addHL adds n to HL, leaving Z untouched.
//
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)

	c.setFlags(c.F.Zero, false, (hl&0xFFF)+(n&0xFFF) > 0xFFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned reads a signed operand and returns SP + operand. The
// carries are taken from the unsigned addition of the low byte.
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned() uint16 {
	value := c.readOperand()
	sp := c.SP.Value()
	result := sp + uint16(int8(value))

	c.setFlags(false, false, (sp&0xF)+uint16(value&0xF) > 0xF, (sp&0xFF)+uint16(value) > 0xFF)
	return result
}

// daa adjusts A so that it holds the binary coded decimal result of
// the previous addition or subtraction.
func (c *CPU) daa() {
	a := c.A.Value()
	if !c.F.Subtract {
		if c.F.Carry || a > 0x99 {
			a += 0x60
			c.F.Carry = true
		}
		if c.F.HalfCarry || a&0xF > 0x9 {
			a += 0x06
		}
	} else {
		if c.F.Carry {
			a -= 0x60
		}
		if c.F.HalfCarry {
			a -= 0x06
		}
	}
	c.F.Zero = a == 0
	c.F.HalfCarry = false
	c.A.Set(a)
}

// rotateAccumulator rotates A with fn, then clears Z as the
// accumulator forms of the rotates always do.
func (c *CPU) rotateAccumulator(fn func(*CPU, uint8) uint8) {
	c.A.Set(fn(c, c.A.Value()))
	c.F.Zero = false
}

func init() {
	// 0x80 - 0xBF - ALU A, r
	for op := uint8(0); op < 8; op++ {
		op := op
		for index := Reg8(0); index < 8; index++ {
			index := index
			cycles := uint8(4)
			if index == regHL {
				cycles = 8
			}
			DefineInstruction(0x80+op<<3+uint8(index), fmt.Sprintf("%s %s", aluNames[op], index), func(c *CPU) uint8 {
				c.alu(op, c.readIndex(index))
				return cycles
			})
		}

		// 0xC6, 0xCE ... 0xFE - ALU A, d8
		DefineInstruction(0xC6+op<<3, fmt.Sprintf("%s d8", aluNames[op]), func(c *CPU) uint8 {
			c.alu(op, c.readOperand())
			return 8
		})
	}

	// 0x04, 0x0C ... 0x3C - INC r
	// 0x05, 0x0D ... 0x3D - DEC r
	for index := Reg8(0); index < 8; index++ {
		index := index
		cycles := uint8(4)
		if index == regHL {
			cycles = 12
		}
		DefineInstruction(0x04+uint8(index)<<3, fmt.Sprintf("INC %s", index), func(c *CPU) uint8 {
			c.writeIndex(index, c.increment(c.readIndex(index)))
			return cycles
		})
		DefineInstruction(0x05+uint8(index)<<3, fmt.Sprintf("DEC %s", index), func(c *CPU) uint8 {
			c.writeIndex(index, c.decrement(c.readIndex(index)))
			return cycles
		})
	}

	// 0x03, 0x13 ... 0x3B - INC rr / DEC rr
	// 0x09, 0x19 ... 0x39 - ADD HL, rr
	for i, pair := range registerPairs {
		pair := pair
		DefineInstruction(0x03+uint8(i)<<4, fmt.Sprintf("INC %s", pair), func(c *CPU) uint8 {
			c.Set16(pair, c.Get16(pair)+1)
			return 8
		})
		DefineInstruction(0x0B+uint8(i)<<4, fmt.Sprintf("DEC %s", pair), func(c *CPU) uint8 {
			c.Set16(pair, c.Get16(pair)-1)
			return 8
		})
		DefineInstruction(0x09+uint8(i)<<4, fmt.Sprintf("ADD HL, %s", pair), func(c *CPU) uint8 {
			c.addHL(c.Get16(pair))
			return 8
		})
	}

	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU) uint8 {
		c.SP.Set(c.addSPSigned())
		return 16
	})

	DefineInstruction(0x07, "RLCA", func(c *CPU) uint8 {
		c.rotateAccumulator((*CPU).rotateLeft)
		return 4
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) uint8 {
		c.rotateAccumulator((*CPU).rotateRight)
		return 4
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) uint8 {
		c.rotateAccumulator((*CPU).rotateLeftThroughCarry)
		return 4
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) uint8 {
		c.rotateAccumulator((*CPU).rotateRightThroughCarry)
		return 4
	})
	DefineInstruction(0x27, "DAA", func(c *CPU) uint8 {
		c.daa()
		return 4
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU) uint8 {
		c.A.Set(0xFF ^ c.A.Value())
		c.F.Subtract = true
		c.F.HalfCarry = true
		return 4
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) uint8 {
		c.setFlags(c.F.Zero, false, false, true)
		return 4
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) uint8 {
		c.setFlags(c.F.Zero, false, false, !c.F.Carry)
		return 4
	})
}
