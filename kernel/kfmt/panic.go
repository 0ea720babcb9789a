package kfmt

import (
	"rvos/kernel"
	"rvos/kernel/cpu"
)

const panicRule = "\n-----------------------------------\n"

var (
	// cpuHaltFn is replaced by tests.
	cpuHaltFn = cpu.Halt

	// errRuntimePanic carries the message of string and error values.
	// Its Message is overwritten on every such panic.
	errRuntimePanic = &kernel.Error{Module: "rt", Message: "unknown cause"}
)

// Panic reports e on the output sink and halts the hart. e may be a
// *kernel.Error, a Go error, a string or nil. Panic only returns when the
// halt hook has been replaced.
func Panic(e interface{}) {
	Printf(panicRule)
	if err := asKernelError(e); err != nil {
		Printf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	Printf("*** kernel panic: system halted ***" + panicRule)

	cpuHaltFn()
}

// asKernelError maps a panic value to the error that gets reported. It
// returns nil for values it does not understand.
func asKernelError(e interface{}) *kernel.Error {
	switch t := e.(type) {
	case *kernel.Error:
		return t
	case string:
		errRuntimePanic.Message = t
	case error:
		errRuntimePanic.Message = t.Error()
	default:
		return nil
	}

	return errRuntimePanic
}
