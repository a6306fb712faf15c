package gameboy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/pkg/emulator"
)

// newROM returns a 32kB image with program placed at the entry point
// 0x0100 and the rest at 0x0150, past the header.
func newROM(entry []byte, program []byte) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], entry)
	copy(rom[0x0134:], "TEST")
	copy(rom[0x0150:], program)
	return rom
}

var jumpToProgram = []byte{0xC3, 0x50, 0x01} // JP 0x0150

func TestNewGameBoy(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		_, err := NewGameBoy(make([]byte, 0x100))
		assert.ErrorIs(t, err, cartridge.ErrMalformedROM)
	})
	t.Run("RAM", func(t *testing.T) {
		gb, err := NewGameBoy(newROM(nil, nil))
		require.NoError(t, err)
		assert.True(t, gb.MMU.Attached(mmu.WRAM))
		assert.True(t, gb.MMU.Attached(mmu.HRAM))
		assert.Equal(t, "TEST", gb.Cartridge.Title())
		assert.Equal(t, emulator.Running, gb.Status())
		assert.Equal(t, cpu.BootState, gb.CPU.Snapshot())
	})
	t.Run("without RAM", func(t *testing.T) {
		gb, err := NewGameBoy(newROM(nil, nil), WithoutRAM(), WithOpenBus(0xFF))
		require.NoError(t, err)
		assert.False(t, gb.MMU.Attached(mmu.WRAM))
		assert.Equal(t, uint8(0xFF), gb.MMU.Read(0xC000))
	})
}

func TestGameBoy_Run(t *testing.T) {
	t.Run("halt", func(t *testing.T) {
		// LD HL, 0xC000; LD (HL+), A; HALT
		gb, err := NewGameBoy(newROM(jumpToProgram, []byte{0x21, 0x00, 0xC0, 0x22, 0x76}))
		require.NoError(t, err)

		cycles, err := gb.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint64(16+12+8+4), cycles)
		assert.Equal(t, emulator.Halted, gb.Status())
		assert.Equal(t, uint8(0x01), gb.MMU.Read(0xC000))
		assert.Equal(t, uint8(0x01), gb.MMU.Read(0xE000), "expected echo RAM to mirror WRAM")
		assert.Equal(t, uint16(0xC001), gb.CPU.HL.Uint16())
		assert.Equal(t, uint16(0x0155), gb.CPU.PC.Value())

		cycles, err = gb.Run(context.Background())
		require.NoError(t, err)
		assert.Zero(t, cycles, "expected a halted CPU not to run")
	})
	t.Run("unimplemented opcode", func(t *testing.T) {
		gb, err := NewGameBoy(newROM([]byte{0x00, 0xD3}, nil))
		require.NoError(t, err)

		cycles, err := gb.Run(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, cpu.ErrUnimplementedOpcode))
		assert.Equal(t, uint64(4), cycles)
		assert.Equal(t, emulator.Errored, gb.Status())
		assert.Equal(t, err, gb.Err())

		var e *cpu.UnimplementedOpcodeError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, uint8(0xD3), e.Opcode)
		assert.Equal(t, uint16(0x0101), e.PC)
		assert.Equal(t, uint16(0x0101), gb.CPU.PC.Value())

		_, err = gb.Step()
		assert.ErrorIs(t, err, cpu.ErrUnimplementedOpcode, "expected an errored CPU to stay errored")
	})
	t.Run("cycle budget", func(t *testing.T) {
		// JR -2
		gb, err := NewGameBoy(newROM([]byte{0x18, 0xFE}, nil), WithCycleBudget(120))
		require.NoError(t, err)

		cycles, err := gb.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint64(120), cycles)
		assert.Equal(t, uint64(120), gb.Cycles())
		assert.Equal(t, emulator.Running, gb.Status())
	})
	t.Run("cancelled", func(t *testing.T) {
		gb, err := NewGameBoy(newROM([]byte{0x18, 0xFE}, nil))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cycles, err := gb.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, cycles)
		assert.Equal(t, emulator.Running, gb.Status())
	})
}

func TestGameBoy_Tracer(t *testing.T) {
	var events []cpu.Event
	gb, err := NewGameBoy(newROM(jumpToProgram, []byte{0xCB, 0x5E, 0x76}),
		WithTracer(cpu.TracerFunc(func(e cpu.Event) {
			events = append(events, e)
		})),
		Debug(),
	)
	require.NoError(t, err)

	_, err = gb.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, "JP a16", events[0].Name)
	assert.Equal(t, uint8(16), events[0].Cycles)
	assert.Equal(t, "BIT 3, (HL)", events[1].Name)
	assert.True(t, events[1].Prefixed)
	assert.Equal(t, uint8(16), events[1].Cycles)
	assert.Equal(t, "HALT", events[2].Name)
}

func TestGameBoy_Reset(t *testing.T) {
	gb, err := NewGameBoy(newROM([]byte{0xD3}, nil))
	require.NoError(t, err)

	_, err = gb.Run(context.Background())
	require.Error(t, err)

	gb.Reset()
	assert.Equal(t, emulator.Running, gb.Status())
	assert.NoError(t, gb.Err())
	assert.Zero(t, gb.Cycles())
	assert.Equal(t, cpu.BootState, gb.CPU.Snapshot())
}
