package emulator

// Status represents the run status of an emulated CPU.
type Status int

const (
	// Running is the status of a CPU that can execute further
	// instructions.
	Running Status = iota
	// Halted is the status of a CPU that executed HALT or STOP, and
	// has nothing to wake it.
	Halted
	// Errored is the status of a CPU that failed to execute an
	// instruction, such as an unimplemented opcode.
	Errored
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Errored:
		return "Errored"
	default:
		return "Unknown"
	}
}

func (s Status) IsRunning() bool {
	return s == Running
}

func (s Status) IsHalted() bool {
	return s == Halted
}

func (s Status) IsErrored() bool {
	return s == Errored
}
