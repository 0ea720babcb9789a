package pmm

import (
	"io"

	"rvos/kernel"
	"rvos/kernel/kfmt"
	"rvos/kernel/mm"
)

var (
	// ErrOutOfMemory is returned when a request does not fit in what is
	// left of the free RAM region.
	ErrOutOfMemory = &kernel.Error{Module: "pmm", Message: "out of physical memory"}

	errZeroPages   = &kernel.Error{Module: "pmm", Message: "zero page allocation requested"}
	errEmptyRegion = &kernel.Error{Module: "pmm", Message: "free RAM region is empty"}
)

// BumpAllocator hands out physical pages from a single contiguous region by
// advancing a cursor. Pages are never returned to it.
//
// The cursor only moves forward and never passes the end of the region, so
// two allocations never overlap. Every page is zero-filled before it is
// handed out.
type BumpAllocator struct {
	start, end uintptr

	// next is the address of the first page not handed out yet.
	next uintptr

	allocCount uint32
}

// Init prepares the allocator to serve [start, end). start is rounded up
// and end is rounded down to a page boundary.
func (alloc *BumpAllocator) Init(start, end uintptr) *kernel.Error {
	alignedStart, alignedEnd := mm.AlignUp(start), mm.AlignDown(end)
	if alignedStart < start || alignedStart >= alignedEnd {
		return errEmptyRegion
	}

	alloc.start, alloc.end = alignedStart, alignedEnd
	alloc.next = alignedStart
	alloc.allocCount = 0
	return nil
}

// AllocPages reserves n contiguous pages and returns the physical address of
// the first one. The returned memory is zero-filled. A request that does not
// fit fails with ErrOutOfMemory and leaves the allocator untouched.
func (alloc *BumpAllocator) AllocPages(n uint32) (uintptr, *kernel.Error) {
	if n == 0 {
		return 0, errZeroPages
	}

	size := uintptr(n) << mm.PageShift
	if size>>mm.PageShift != uintptr(n) || size > alloc.end-alloc.next {
		return 0, ErrOutOfMemory
	}

	base := alloc.next
	alloc.next += size
	alloc.allocCount += n

	kernel.Memset(mm.PhysSlice(base, size), 0)
	return base, nil
}

// AllocFrame reserves a single zero-filled page.
func (alloc *BumpAllocator) AllocFrame() (mm.Frame, *kernel.Error) {
	addr, err := alloc.AllocPages(1)
	if err != nil {
		return mm.InvalidFrame, err
	}

	return mm.FrameFromAddress(addr), nil
}

// Stats describes the state of a BumpAllocator.
type Stats struct {
	Start, End, Next uintptr

	// AllocatedPages is the number of pages handed out so far.
	AllocatedPages uint32

	// FreePages is the number of pages left in the region.
	FreePages uint32
}

// Stats returns a snapshot of the allocator state.
func (alloc *BumpAllocator) Stats() Stats {
	return Stats{
		Start:          alloc.start,
		End:            alloc.end,
		Next:           alloc.next,
		AllocatedPages: alloc.allocCount,
		FreePages:      uint32((alloc.end - alloc.next) >> mm.PageShift),
	}
}

// PrintStats writes a one-line summary of the allocator state to w.
func (alloc *BumpAllocator) PrintStats(w io.Writer) {
	kfmt.Fprintf(w, "free RAM [0x%8x - 0x%8x], next 0x%8x, used: %d pages, free: %d pages\n",
		alloc.start, alloc.end, alloc.next, alloc.allocCount, uint32((alloc.end-alloc.next)>>mm.PageShift))
}
