package trap

import (
	"rvos/kernel"
	"rvos/kernel/cpu"
	"rvos/kernel/kfmt"
)

var (
	// ErrUnhandledTrap is reported for every trap. The kernel has no
	// recoverable trap sources.
	ErrUnhandledTrap = &kernel.Error{Module: "trap", Message: "unexpected trap"}

	errMisalignedVector = &kernel.Error{Module: "trap", Message: "trap vector must be 4-byte aligned"}

	// the following functions are replaced by tests.
	readSCauseFn = cpu.ReadSCause
	readSTValFn  = cpu.ReadSTVal
	readSEPCFn   = cpu.ReadSEPC
	writeSTVecFn = cpu.WriteSTVec
	entryAddrFn  = entryAddr
)

// Init points stvec at kernel_entry in direct mode.
func Init() *kernel.Error {
	addr := entryAddrFn()
	if addr&3 != 0 {
		return errMisalignedVector
	}

	writeSTVecFn(addr)
	return nil
}

// Handle reports the trap described by the cause registers together with
// the saved registers in frame and halts.
func Handle(frame *Frame) {
	scause, stval, sepc := readSCauseFn(), readSTValFn(), readSEPCFn()

	kfmt.Printf("\nunexpected trap: scause=0x%8x (%s), stval=0x%8x, sepc=0x%8x\n", scause, Describe(scause), stval, sepc)
	if frame != nil {
		frame.DumpTo(kfmt.GetOutputSink())
	}

	kfmt.Panic(ErrUnhandledTrap)
}
