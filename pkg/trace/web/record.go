package web

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// RecordSize is the size of a single encoded cpu.Event.
//
//	0-1   PC of the instruction
//	2     opcode
//	3     bit 7: 0xCB prefixed, bits 0-6: cycles
//	4-11  A F B C D E H L after execution
//	12-13 SP after execution
//	14-15 PC after execution
//
// Multi-byte values are little-endian. The mnemonic is not encoded,
// it is looked up from the opcode when decoding.
const RecordSize = 16

const prefixedBit = types.Bit7

// ErrShortRecord is returned when a batch is not a whole number of
// records.
var ErrShortRecord = errors.New("trace: batch is not a whole number of records")

// AppendRecord appends the encoding of e to b.
func AppendRecord(b []byte, e cpu.Event) []byte {
	var r [RecordSize]byte
	binary.LittleEndian.PutUint16(r[0:], e.PC)
	r[2] = e.Opcode
	r[3] = e.Cycles &^ prefixedBit
	if e.Prefixed {
		r[3] |= prefixedBit
	}
	s := e.Registers
	copy(r[4:12], []byte{s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L})
	binary.LittleEndian.PutUint16(r[12:], s.SP)
	binary.LittleEndian.PutUint16(r[14:], s.PC)

	return append(b, r[:]...)
}

// DecodeBatch decodes every record in b.
func DecodeBatch(b []byte) ([]cpu.Event, error) {
	if len(b)%RecordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortRecord, len(b))
	}

	events := make([]cpu.Event, 0, len(b)/RecordSize)
	for ; len(b) > 0; b = b[RecordSize:] {
		e := cpu.Event{
			PC:       binary.LittleEndian.Uint16(b[0:]),
			Opcode:   b[2],
			Prefixed: b[3]&prefixedBit != 0,
			Cycles:   b[3] &^ prefixedBit,
			Registers: cpu.State{
				A: b[4], F: b[5],
				B: b[6], C: b[7],
				D: b[8], E: b[9],
				H: b[10], L: b[11],
				SP: binary.LittleEndian.Uint16(b[12:]),
				PC: binary.LittleEndian.Uint16(b[14:]),
			},
		}
		if e.Prefixed {
			e.Name = cpu.InstructionSetCB[e.Opcode].Name()
		} else {
			e.Name = cpu.InstructionSet[e.Opcode].Name()
		}
		events = append(events, e)
	}

	return events, nil
}
