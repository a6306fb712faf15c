package cpu

import "fmt"

// stackPairs are the operands of PUSH and POP, in encoding order.
var stackPairs = [4]Pair{PairBC, PairDE, PairHL, PairAF}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition reports whether the condition cc (NZ, Z, NC, C) holds.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.F.Zero
	case 1:
		return c.F.Zero
	case 2:
		return !c.F.Carry
	default:
		return c.F.Carry
	}
}

// pushStack pushes a 16 bit value onto the stack.
func (c *CPU) pushStack(value uint16) {
	c.SP.Set(c.SP.Value() - 2)
	c.bus.WriteWord(c.SP.Value(), value)
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	value := c.bus.ReadWord(c.SP.Value())
	c.SP.Set(c.SP.Value() + 2)
	return value
}

// jumpAbsolute reads a 16-bit address and jumps to it if condition
// is true.
//
//	JP cc, nn
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(condition bool) uint8 {
	address := c.readOperand16()
	if !condition {
		return 12
	}
	c.PC.Set(address)
	return 16
}

// jumpRelative reads a signed offset and adds it to PC if condition
// is true. The offset is relative to the instruction that follows.
//
//	JR cc, e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(condition bool) uint8 {
	offset := int8(c.readOperand())
	if !condition {
		return 8
	}
	c.PC.Set(c.PC.Value() + uint16(offset))
	return 12
}

// call reads a 16-bit address and, if condition is true, pushes the
// address of the next instruction onto the stack and jumps.
//
//	CALL cc, nn
func (c *CPU) call(condition bool) uint8 {
	address := c.readOperand16()
	if !condition {
		return 12
	}
	c.pushStack(c.PC.Value())
	c.PC.Set(address)
	return 24
}

// ret pops the top two bytes off the stack and jumps to that address.
func (c *CPU) ret() {
	c.PC.Set(c.popStack())
}

func init() {
	DefineInstruction(0xC3, "JP a16", func(c *CPU) uint8 { return c.jumpAbsolute(true) })
	DefineInstruction(0x18, "JR r8", func(c *CPU) uint8 { return c.jumpRelative(true) })
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) uint8 { return c.call(true) })
	DefineInstruction(0xE9, "JP HL", func(c *CPU) uint8 {
		c.PC.Set(c.HL.Uint16())
		return 4
	})
	DefineInstruction(0xC9, "RET", func(c *CPU) uint8 {
		c.ret()
		return 16
	})
	DefineInstruction(0xD9, "RETI", func(c *CPU) uint8 {
		c.ret()
		c.ime = true
		return 16
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		name := conditionNames[cc]
		DefineInstruction(0x20+cc<<3, fmt.Sprintf("JR %s, r8", name), func(c *CPU) uint8 {
			return c.jumpRelative(c.condition(cc))
		})
		DefineInstruction(0xC2+cc<<3, fmt.Sprintf("JP %s, a16", name), func(c *CPU) uint8 {
			return c.jumpAbsolute(c.condition(cc))
		})
		DefineInstruction(0xC4+cc<<3, fmt.Sprintf("CALL %s, a16", name), func(c *CPU) uint8 {
			return c.call(c.condition(cc))
		})
		DefineInstruction(0xC0+cc<<3, fmt.Sprintf("RET %s", name), func(c *CPU) uint8 {
			if !c.condition(cc) {
				return 8
			}
			c.ret()
			return 20
		})
	}

	// 0xC1, 0xD1, 0xE1, 0xF1 - POP rr
	// 0xC5, 0xD5, 0xE5, 0xF5 - PUSH rr
	for i, pair := range stackPairs {
		pair := pair
		DefineInstruction(0xC1+uint8(i)<<4, fmt.Sprintf("POP %s", pair), func(c *CPU) uint8 {
			c.Set16(pair, c.popStack())
			return 12
		})
		DefineInstruction(0xC5+uint8(i)<<4, fmt.Sprintf("PUSH %s", pair), func(c *CPU) uint8 {
			c.pushStack(c.Get16(pair))
			return 16
		})
	}

	// 0xC7, 0xCF ... 0xFF - RST n
	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) << 3
		DefineInstruction(0xC7+n<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU) uint8 {
			c.pushStack(c.PC.Value())
			c.PC.Set(vector)
			return 16
		})
	}
}
