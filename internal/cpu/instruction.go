package cpu

// Instruction is a single entry in an instruction table. An entry
// without fn is unimplemented.
type Instruction struct {
	name string
	fn   func(*CPU) uint8
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Implemented reports whether the instruction has any behaviour.
func (i Instruction) Implemented() bool {
	return i.fn != nil
}

// InstructionSet holds the primary instructions, indexed by opcode.
var InstructionSet [256]Instruction

// InstructionSetCB holds the instructions prefixed by 0xCB.
var InstructionSetCB [256]Instruction

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode. fn returns the number of cycles taken.
func DefineInstruction(opcode uint8, name string, fn func(*CPU) uint8) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU) uint8) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

// illegalOpcodes are not wired to anything on the SM83, and remain
// unimplemented.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) uint8 { return 4 })
	DefineInstruction(0x10, "STOP", func(c *CPU) uint8 {
		c.readOperand() // padding byte
		c.mode = ModeStop
		return 4
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) uint8 {
		c.mode = ModeHalt
		return 4
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) uint8 {
		c.ime = false
		return 4
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) uint8 {
		c.ime = true
		return 4
	})

	for _, opcode := range illegalOpcodes {
		InstructionSet[opcode] = Instruction{name: "ILLEGAL"}
	}
	InstructionSet[prefixCB] = Instruction{name: "PREFIX CB"}
}
