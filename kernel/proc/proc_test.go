//go:build !tinygo.riscv32

package proc

import (
	"testing"

	"rvos/kernel/cpu"
	"rvos/kernel/mm"
	"rvos/kernel/mm/pmm"
)

var testLayout = Layout{KernelBase: 0x80200000, FreeRAMEnd: 0x80230000}

// setupTestRAM backs the 64 KiB free RAM region of testLayout and registers
// a bump allocator over it.
func setupTestRAM(t *testing.T) *pmm.BumpAllocator {
	const freeRAM = uintptr(0x80220000)

	mm.SetPhysMemory(freeRAM, make([]byte, testLayout.FreeRAMEnd-freeRAM))

	alloc := new(pmm.BumpAllocator)
	if err := alloc.Init(freeRAM, testLayout.FreeRAMEnd); err != nil {
		t.Fatal(err)
	}
	mm.SetFrameAllocator(alloc.AllocFrame)
	cpu.Reset()

	t.Cleanup(func() {
		mm.SetFrameAllocator(nil)
		mm.SetPhysMemory(0, nil)
		cpu.Reset()
	})

	return alloc
}

// recordingSwitcher records switches and returns immediately, as if the
// next context had run and switched back.
type recordingSwitcher struct {
	switches [][2]*uintptr
}

func (r *recordingSwitcher) Switch(prev, next *uintptr) {
	r.switches = append(r.switches, [2]*uintptr{prev, next})
}
