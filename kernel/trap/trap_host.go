//go:build !tinygo.riscv32

package trap

import (
	"rvos/kernel"
	"rvos/kernel/cpu"
	"rvos/kernel/kfmt"
)

// HostVector is the stand-in address installed in stvec by hosted builds.
const HostVector = uintptr(0x80200100)

var errNoVector = &kernel.Error{Module: "trap", Message: "trap taken with no vector installed"}

func entryAddr() uintptr {
	return HostVector
}

// Raise simulates the hart taking a trap: the cause registers are latched
// and, if a vector is installed, Handle runs with frame the way the
// trampoline would call it.
func Raise(scause, stval, sepc uintptr, frame *Frame) {
	cpu.LatchTrap(scause, stval, sepc)

	if cpu.ReadSTVec() != HostVector {
		kfmt.Panic(errNoVector)
		return
	}

	Handle(frame)
}
