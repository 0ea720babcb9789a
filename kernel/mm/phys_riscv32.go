//go:build tinygo.riscv32

package mm

import "unsafe"

// PhysSlice returns a byte view of size bytes of physical memory starting
// at addr. The kernel identity maps all of RAM so the physical address is
// used directly.
func PhysSlice(addr, size uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}
