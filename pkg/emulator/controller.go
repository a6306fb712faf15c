package emulator

import "context"

// Controller defines the interface contract for an emulator to
// implement in order for an entry point or observer to drive it.
type Controller interface {
	// Step executes a single instruction, returning the cycles taken.
	Step() (uint8, error)
	// Run executes instructions until the context is done, the
	// emulator stops running or an instruction fails, returning the
	// cycles executed.
	Run(ctx context.Context) (uint64, error)
	// Reset returns the emulator to its power-up state.
	Reset()
	Status() Status
}
