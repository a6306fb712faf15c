package types

import "golang.org/x/exp/constraints"

// Register holds a single fixed-width value. The CPU uses
// Register[uint8] for A, B, C, D, E, H and L, and Register[uint16]
// for SP and PC.
type Register[T constraints.Unsigned] struct {
	value T
}

// NewRegister returns a Register holding v.
func NewRegister[T constraints.Unsigned](v T) Register[T] {
	return Register[T]{value: v}
}

// Value returns the current value of the Register.
func (r *Register[T]) Value() T {
	return r.value
}

// Set sets the value of the Register.
func (r *Register[T]) Set(v T) {
	r.value = v
}

// Inc increments the Register by 1, returning the new value and
// whether the increment wrapped around to 0.
func (r *Register[T]) Inc() (T, bool) {
	r.value++
	return r.value, r.value == 0
}

// Dec decrements the Register by 1, returning the new value and
// whether the decrement wrapped around from 0.
func (r *Register[T]) Dec() (T, bool) {
	wrapped := r.value == 0
	r.value--
	return r.value, wrapped
}
