//go:build tinygo.riscv32

package trap

import "unsafe"

// kernelEntry marks the trampoline in arch/riscv32/entry.S.
//
//go:extern kernel_entry
var kernelEntry [0]byte

func entryAddr() uintptr {
	return uintptr(unsafe.Pointer(&kernelEntry))
}

// handleTrap is called by kernel_entry with a pointer to the saved frame.
//
//export handle_trap
func handleTrap(frame *Frame) {
	Handle(frame)
}
