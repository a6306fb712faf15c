package cpu

type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Flags holds the four condition flags stored in the upper nibble
// of the F register. The lower nibble of F always reads 0.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// Value packs the flags into their F register representation.
func (f *Flags) Value() uint8 {
	var v uint8
	if f.Zero {
		v |= 1 << FlagZero
	}
	if f.Subtract {
		v |= 1 << FlagSubtract
	}
	if f.HalfCarry {
		v |= 1 << FlagHalfCarry
	}
	if f.Carry {
		v |= 1 << FlagCarry
	}
	return v
}

// Set unpacks the flags from an F register value, ignoring the
// lower nibble.
func (f *Flags) Set(v uint8) {
	f.Zero = v&(1<<FlagZero) != 0
	f.Subtract = v&(1<<FlagSubtract) != 0
	f.HalfCarry = v&(1<<FlagHalfCarry) != 0
	f.Carry = v&(1<<FlagCarry) != 0
}

// String returns the flags in the form "ZNHC", with a '-' in place
// of every flag that is clear.
func (f Flags) String() string {
	b := []byte("----")
	if f.Zero {
		b[0] = 'Z'
	}
	if f.Subtract {
		b[1] = 'N'
	}
	if f.HalfCarry {
		b[2] = 'H'
	}
	if f.Carry {
		b[3] = 'C'
	}
	return string(b)
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F.Zero = zero
	c.F.Subtract = subtract
	c.F.HalfCarry = halfCarry
	c.F.Carry = carry
}
