package cpu

import "testing"

// setOperand writes value to the operand selected by index, pointing
// HL at 0xC000 for the memory operand.
func setOperand(c *CPU, bus *testBus, index Reg8, value uint8) {
	if index == regHL {
		c.HL.SetUint16(0xC000)
		bus[0xC000] = value
		return
	}
	c.Set8(index, value)
}

func getOperand(c *CPU, bus *testBus, index Reg8) uint8 {
	if index == regHL {
		return bus[0xC000]
	}
	return c.Get8(index)
}

func TestInstructionCB_Bit(t *testing.T) {
	for b := uint8(0); b < 8; b++ {
		for index := Reg8(0); index < 8; index++ {
			opcode := 0x40 + b*8 + uint8(index)
			expectedCycles := uint8(8)
			if index == regHL {
				expectedCycles = 16
			}

			for _, carry := range []bool{false, true} {
				c, bus := newTestCPU()
				c.F.Carry = carry

				// only bit b clear
				setOperand(c, bus, index, ^(uint8(1) << b))
				if cycles := execute(t, c, bus, 0xCB, opcode); cycles != expectedCycles {
					t.Errorf("BIT %d, %s: expected %d cycles, got %d", b, index, expectedCycles, cycles)
				}
				if !c.F.Zero || c.F.Subtract || !c.F.HalfCarry || c.F.Carry != carry {
					t.Errorf("BIT %d, %s: expected Z set, got %s", b, index, c.F)
				}

				// only bit b set
				c.PC.Set(0x0100)
				setOperand(c, bus, index, uint8(1)<<b)
				execute(t, c, bus, 0xCB, opcode)
				if c.F.Zero || c.F.Subtract || !c.F.HalfCarry || c.F.Carry != carry {
					t.Errorf("BIT %d, %s: expected Z reset, got %s", b, index, c.F)
				}
			}
		}
	}
}

func TestInstructionCB_ResSet(t *testing.T) {
	for b := uint8(0); b < 8; b++ {
		for index := Reg8(0); index < 8; index++ {
			c, bus := newTestCPU()
			flags := c.F.Value()

			setOperand(c, bus, index, 0xFF)
			execute(t, c, bus, 0xCB, 0x80+b*8+uint8(index))
			if v := getOperand(c, bus, index); v != 0xFF&^(1<<b) {
				t.Errorf("RES %d, %s: expected 0x%02X, got 0x%02X", b, index, 0xFF&^(1<<b), v)
			}

			setOperand(c, bus, index, 0x00)
			execute(t, c, bus, 0xCB, 0xC0+b*8+uint8(index))
			if v := getOperand(c, bus, index); v != 1<<b {
				t.Errorf("SET %d, %s: expected 0x%02X, got 0x%02X", b, index, 1<<b, v)
			}
			if c.F.Value() != flags {
				t.Errorf("expected flags to be unaffected, got %s", c.F)
			}
		}
	}
}

func TestInstructionCB_Shift(t *testing.T) {
	tests := []struct {
		name     string
		base     uint8
		value    uint8
		carryIn  bool
		expected uint8
		carry    bool
	}{
		{"RLC", 0x00, 0x85, false, 0x0B, true},
		{"RRC", 0x08, 0x01, false, 0x80, true},
		{"RL", 0x10, 0x80, false, 0x00, true},
		{"RL", 0x10, 0x11, true, 0x23, false},
		{"RR", 0x18, 0x01, false, 0x00, true},
		{"RR", 0x18, 0x8A, true, 0xC5, false},
		{"SLA", 0x20, 0xFF, false, 0xFE, true},
		{"SRA", 0x28, 0x8A, false, 0xC5, false},
		{"SRA", 0x28, 0x01, false, 0x00, true},
		{"SWAP", 0x30, 0xF0, true, 0x0F, false},
		{"SWAP", 0x30, 0x00, false, 0x00, false},
		{"SRL", 0x38, 0xFF, false, 0x7F, true},
	}
	for _, tt := range tests {
		for index := Reg8(0); index < 8; index++ {
			c, bus := newTestCPU()
			c.F.Carry = tt.carryIn
			setOperand(c, bus, index, tt.value)

			opcode := tt.base + uint8(index)
			if name := InstructionSetCB[opcode].Name(); name != tt.name+" "+index.String() {
				t.Errorf("expected %s %s, got %s", tt.name, index, name)
			}
			execute(t, c, bus, 0xCB, opcode)
			if v := getOperand(c, bus, index); v != tt.expected {
				t.Errorf("%s %s 0x%02X: expected 0x%02X, got 0x%02X", tt.name, index, tt.value, tt.expected, v)
			}
			if c.F.Carry != tt.carry || c.F.Zero != (tt.expected == 0) || c.F.Subtract || c.F.HalfCarry {
				t.Errorf("%s %s 0x%02X: unexpected flags %s", tt.name, index, tt.value, c.F)
			}
		}
	}
}

func TestBitIndex(t *testing.T) {
	for opcode := 0x40; opcode < 0x100; opcode++ {
		base := uint8(opcode) & 0xC0
		expected := uint8(opcode) >> 3 & 7
		if b := bitIndex(uint8(opcode), base); b != expected {
			t.Errorf("0x%02X: expected bit %d, got %d", opcode, expected, b)
		}
	}
}
