// Package mm defines the physical and virtual page abstractions shared by
// the physical page allocator (pmm) and the page table manager (vmm).
package mm

import "rvos/kernel"

const (
	// PageShift is log2(PageSize).
	PageShift = uintptr(12)

	// PageSize is the Sv32 base page size in bytes.
	PageSize = uintptr(1 << PageShift)

	// PageOffsetMask selects the offset of an address inside its page.
	PageOffsetMask = PageSize - 1
)

// Frame is a physical page number (PPN).
type Frame uintptr

// InvalidFrame is returned by allocators that fail to reserve a frame.
const InvalidFrame = Frame(^uintptr(0))

// Address returns the physical address of the first byte in the frame.
func (f Frame) Address() uintptr {
	return uintptr(f) << PageShift
}

// FrameFromAddress returns the frame that contains physAddr.
func FrameFromAddress(physAddr uintptr) Frame {
	return Frame(physAddr >> PageShift)
}

// Page is a virtual page number.
type Page uintptr

// Address returns the virtual address of the first byte in the page.
func (p Page) Address() uintptr {
	return uintptr(p) << PageShift
}

// PageFromAddress returns the page that contains virtAddr.
func PageFromAddress(virtAddr uintptr) Page {
	return Page(virtAddr >> PageShift)
}

// IsPageAligned reports whether addr sits on a page boundary.
func IsPageAligned(addr uintptr) bool {
	return addr&PageOffsetMask == 0
}

// AlignUp rounds addr up to the next page boundary.
func AlignUp(addr uintptr) uintptr {
	return (addr + PageOffsetMask) &^ PageOffsetMask
}

// AlignDown rounds addr down to the page boundary that contains it.
func AlignDown(addr uintptr) uintptr {
	return addr &^ PageOffsetMask
}

// FrameAllocatorFn returns a zero-filled physical frame.
type FrameAllocatorFn func() (Frame, *kernel.Error)

var frameAllocator FrameAllocatorFn

// SetFrameAllocator registers the function used by AllocFrame.
func SetFrameAllocator(allocFn FrameAllocatorFn) { frameAllocator = allocFn }

// AllocFrame allocates a frame with the registered allocator.
func AllocFrame() (Frame, *kernel.Error) { return frameAllocator() }
