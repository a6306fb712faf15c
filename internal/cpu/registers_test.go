package cpu

import (
	"strings"
	"testing"
)

func TestRegisters_Pairs(t *testing.T) {
	r := NewRegisters()
	pairs := []struct {
		pair      Pair
		high, low Reg8
	}{
		{PairBC, RegB, RegC},
		{PairDE, RegD, RegE},
		{PairHL, RegH, RegL},
	}
	for _, p := range pairs {
		for i := 0; i <= 0xFFFF; i++ {
			v := uint16(i)
			r.Set16(p.pair, v)
			if got := r.Get16(p.pair); got != v {
				t.Errorf("%s: expected 0x%04X, got 0x%04X", p.pair, v, got)
			}
			if h := r.Get8(p.high); h != uint8(v>>8) {
				t.Errorf("%s: expected %s to be 0x%02X, got 0x%02X", p.pair, p.high, v>>8, h)
			}
			if l := r.Get8(p.low); l != uint8(v) {
				t.Errorf("%s: expected %s to be 0x%02X, got 0x%02X", p.pair, p.low, uint8(v), l)
			}
		}

		r.Set8(p.high, 0xAB)
		r.Set8(p.low, 0xCD)
		if got := r.Get16(p.pair); got != 0xABCD {
			t.Errorf("%s: expected 0xABCD, got 0x%04X", p.pair, got)
		}
	}

	for _, p := range []Pair{PairSP, PairPC} {
		r.Set16(p, 0xBEEF)
		if got := r.Get16(p); got != 0xBEEF {
			t.Errorf("%s: expected 0xBEEF, got 0x%04X", p, got)
		}
	}
}

func TestRegisters_AF(t *testing.T) {
	r := NewRegisters()
	r.Set16(PairAF, 0x12FF)

	if got := r.Get16(PairAF); got != 0x12F0 {
		t.Errorf("expected the lower nibble of F to be discarded, got 0x%04X", got)
	}
	if r.A.Value() != 0x12 {
		t.Errorf("expected A to be 0x12, got 0x%02X", r.A.Value())
	}
	if !r.F.Zero || !r.F.Subtract || !r.F.HalfCarry || !r.F.Carry {
		t.Errorf("expected all flags to be set, got %s", r.F)
	}
}

func TestRegisters_Fetch(t *testing.T) {
	r := NewRegisters()
	bus := &testBus{}
	bus[0x0100], bus[0x0101], bus[0x0102] = 0xAA, 0x34, 0x12

	if v := r.FetchByte(bus); v != 0xAA {
		t.Errorf("expected 0xAA, got 0x%02X", v)
	}
	if v := r.FetchWord(bus); v != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04X", v)
	}
	if pc := r.PC.Value(); pc != 0x0103 {
		t.Errorf("expected PC to be 0x0103, got 0x%04X", pc)
	}

	r.PC.Set(0xFFFF)
	r.FetchByte(bus)
	if pc := r.PC.Value(); pc != 0x0000 {
		t.Errorf("expected PC to wrap to 0x0000, got 0x%04X", pc)
	}
}

func TestRegisters_Snapshot(t *testing.T) {
	r := NewRegisters()
	s := r.Snapshot()
	if s != BootState {
		t.Errorf("expected %s, got %s", BootState, s)
	}

	r.HL.SetUint16(0xC000)
	r.SP.Set(0xDFFF)
	if r.Snapshot() == s {
		t.Error("expected snapshot to be a copy")
	}

	r.Restore(s)
	if r.Snapshot() != s {
		t.Errorf("expected %s, got %s", s, r.Snapshot())
	}
	if !strings.Contains(s.String(), "PC: 0100") {
		t.Errorf("expected PC in %q", s.String())
	}
}

func TestReg8_String(t *testing.T) {
	names := map[Reg8]string{RegB: "B", RegL: "L", regHL: "(HL)", RegA: "A"}
	for r, name := range names {
		if r.String() != name {
			t.Errorf("expected %s, got %s", name, r)
		}
	}
	if PairHL.String() != "HL" || Pair(9).String() != "Pair(9)" {
		t.Errorf("unexpected pair names %s, %s", PairHL, Pair(9))
	}
}

func TestRegisters_MemoryOperand(t *testing.T) {
	r := NewRegisters()
	for name, fn := range map[string]func(){
		"Get8": func() { r.Get8(regHL) },
		"Set8": func() { r.Set8(regHL, 0x42) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected %s to panic for %s", name, regHL)
				}
			}()
			fn()
		})
	}
}
