package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ram"
)

// traceProgram runs NOP, INC A, SWAP A and JP 0x0100 and returns
// the traced events.
func traceProgram(t *testing.T) []cpu.Event {
	t.Helper()

	rom := ram.NewRAM(0x8000)
	for i, b := range []uint8{0x00, 0x3C, 0xCB, 0x37, 0xC3, 0x00, 0x01} {
		rom.Write(0x0100+uint16(i), b)
	}

	var events []cpu.Event
	c := cpu.NewCPU(mmu.NewMMU(rom), cpu.WithTracer(cpu.TracerFunc(func(e cpu.Event) {
		events = append(events, e)
	})))
	for i := 0; i < 4; i++ {
		_, err := c.Step()
		require.NoError(t, err)
	}

	return events
}

func TestAppendRecord(t *testing.T) {
	e := cpu.Event{
		PC:       0x1234,
		Opcode:   0x5E,
		Prefixed: true,
		Name:     "BIT 3, (HL)",
		Cycles:   16,
		Registers: cpu.State{
			A: 0x01, F: 0xA0, B: 0x02, C: 0x03, D: 0x04, E: 0x05, H: 0xC0, L: 0x00,
			SP: 0xFFFE, PC: 0x1236,
		},
	}

	b := AppendRecord(nil, e)
	require.Len(t, b, RecordSize)
	assert.Equal(t, []byte{
		0x34, 0x12, 0x5E, 0x90,
		0x01, 0xA0, 0x02, 0x03, 0x04, 0x05, 0xC0, 0x00,
		0xFE, 0xFF, 0x36, 0x12,
	}, b)

	events, err := DecodeBatch(b)
	require.NoError(t, err)
	assert.Equal(t, []cpu.Event{e}, events)
}

func TestDecodeBatch(t *testing.T) {
	events := traceProgram(t)

	var b []byte
	for _, e := range events {
		b = AppendRecord(b, e)
	}
	decoded, err := DecodeBatch(b)
	require.NoError(t, err)
	assert.Equal(t, events, decoded)

	_, err = DecodeBatch(b[:RecordSize+1])
	assert.ErrorIs(t, err, ErrShortRecord)

	decoded, err = DecodeBatch(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
