//go:build !tinygo.riscv32

package mm

import "rvos/kernel"

var (
	physBase uintptr
	physMem  []byte

	errPhysOutOfRange = &kernel.Error{Module: "mm", Message: "physical access outside of simulated RAM"}
)

// SetPhysMemory backs the physical address range [base, base+len(backing))
// with backing. Passing a nil backing removes the window.
func SetPhysMemory(base uintptr, backing []byte) {
	physBase, physMem = base, backing
}

// PhysSlice returns a byte view of size bytes of simulated physical memory
// starting at addr. Accesses outside the window installed by SetPhysMemory
// panic.
func PhysSlice(addr, size uintptr) []byte {
	if addr < physBase {
		panic(errPhysOutOfRange)
	}

	off := addr - physBase
	if off > uintptr(len(physMem)) || size > uintptr(len(physMem))-off {
		panic(errPhysOutOfRange)
	}

	return physMem[off : off+size : off+size]
}
