package cpu

import (
	"errors"
	"fmt"
)

// ErrUnimplementedOpcode is matched by every UnimplementedOpcodeError.
var ErrUnimplementedOpcode = errors.New("unimplemented opcode")

// UnimplementedOpcodeError is returned by Step when the fetched
// opcode has no behaviour. The registers are left as they were
// before the fetch.
type UnimplementedOpcodeError struct {
	// Opcode is the byte that could not be executed.
	Opcode uint8
	// Prefixed is set when Opcode was read from the CB table.
	Prefixed bool
	// PC is the address of the first byte of the instruction.
	PC uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("unimplemented opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("unimplemented opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *UnimplementedOpcodeError) Unwrap() error {
	return ErrUnimplementedOpcode
}
