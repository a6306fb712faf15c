package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Event describes a single executed instruction.
type Event struct {
	// PC is the address the instruction was fetched from.
	PC       uint16
	Opcode   uint8
	Prefixed bool
	Name     string
	Cycles   uint8
	// Registers holds the register values after execution.
	Registers State
}

func (e Event) String() string {
	op := fmt.Sprintf("%02X", e.Opcode)
	if e.Prefixed {
		op = "CB " + op
	}
	return fmt.Sprintf("%04X  %-5s %-14s %2d  %s", e.PC, op, e.Name, e.Cycles, e.Registers)
}

// Tracer receives an Event for every instruction the CPU executes.
// Trace is called synchronously from Step and must not block.
type Tracer interface {
	Trace(e Event)
}

// TracerFunc adapts a function to a Tracer.
type TracerFunc func(e Event)

func (f TracerFunc) Trace(e Event) {
	f(e)
}

// LogTracer returns a Tracer that writes every Event to l at debug
// level.
func LogTracer(l log.Logger) Tracer {
	return TracerFunc(func(e Event) {
		l.Debugf("%s", e)
	})
}

// multiTracer fans an Event out to several tracers.
type multiTracer []Tracer

func (m multiTracer) Trace(e Event) {
	for _, t := range m {
		t.Trace(e)
	}
}

// MultiTracer returns a Tracer that passes every Event to each of
// the given tracers, in order.
func MultiTracer(tracers ...Tracer) Tracer {
	return multiTracer(tracers)
}
