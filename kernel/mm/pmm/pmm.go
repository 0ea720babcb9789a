// Package pmm implements the kernel's physical page allocator.
package pmm

import (
	"rvos/kernel"
	"rvos/kernel/kfmt"
	"rvos/kernel/mm"
)

var (
	// allocator serves every physical page allocation made by the kernel.
	allocator BumpAllocator

	statsLog = kfmt.PrefixWriter{Prefix: []byte("[pmm] ")}
)

// Init sets up the allocator over the free RAM region [start, end) provided
// by the linker script and registers it as the mm frame allocator.
func Init(start, end uintptr) *kernel.Error {
	if err := allocator.Init(start, end); err != nil {
		return err
	}

	mm.SetFrameAllocator(allocator.AllocFrame)
	statsLog.Sink = kfmt.GetOutputSink()
	allocator.PrintStats(&statsLog)
	return nil
}

// AllocPages reserves n contiguous zero-filled pages.
func AllocPages(n uint32) (uintptr, *kernel.Error) {
	return allocator.AllocPages(n)
}

// GetStats returns the state of the kernel allocator.
func GetStats() Stats {
	return allocator.Stats()
}
