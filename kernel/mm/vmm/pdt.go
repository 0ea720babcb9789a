package vmm

import (
	"rvos/kernel"
	"rvos/kernel/cpu"
	"rvos/kernel/mm"
)

var (
	// ErrMisalignedAddress is returned by Map when either address is not
	// page aligned.
	ErrMisalignedAddress = &kernel.Error{Module: "vmm", Message: "address is not page aligned"}

	// ErrInvalidMapping is returned when a virtual address is not mapped.
	ErrInvalidMapping = &kernel.Error{Module: "vmm", Message: "virtual address does not point to a mapped physical page"}

	errMegapageUnsupported = &kernel.Error{Module: "vmm", Message: "4 MiB megapages are not supported"}

	// the following functions are replaced by tests since CSR accesses
	// need supervisor mode.
	flushTLBFn  = cpu.FlushTLB
	writeSATPFn = cpu.WriteSATP
)

// PageDirectoryTable is the root (outer) table of an Sv32 address space.
type PageDirectoryTable struct {
	rootFrame mm.Frame
}

// NewPageDirectoryTable allocates an empty root table.
func NewPageDirectoryTable() (PageDirectoryTable, *kernel.Error) {
	frame, err := mm.AllocFrame()
	if err != nil {
		return PageDirectoryTable{}, err
	}

	// Allocated frames are zero-filled so every entry starts invalid.
	return PageDirectoryTable{rootFrame: frame}, nil
}

// Root returns the frame that holds the root table.
func (pdt PageDirectoryTable) Root() mm.Frame {
	return pdt.rootFrame
}

// Map installs a translation from the page at virtAddr to the frame at
// physAddr with the given flags. Missing inner tables are allocated on the
// way. Mapping an already mapped page overwrites its entry.
func (pdt PageDirectoryTable) Map(virtAddr, physAddr uintptr, flags PageTableEntryFlag) *kernel.Error {
	if !mm.IsPageAligned(virtAddr) || !mm.IsPageAligned(physAddr) {
		return ErrMisalignedAddress
	}

	var err *kernel.Error

	walk(pdt.rootFrame, virtAddr, func(level uint8, pte *pageTableEntry) bool {
		if level == pageLevels-1 {
			pte.ClearFlags(pteFlagMask)
			pte.SetFrame(mm.FrameFromAddress(physAddr))
			pte.SetFlags((flags & pteFlagMask) | FlagValid)
			return true
		}

		if !pte.HasFlags(FlagValid) {
			var tableFrame mm.Frame
			if tableFrame, err = mm.AllocFrame(); err != nil {
				return false
			}

			pte.ClearFlags(pteFlagMask)
			pte.SetFrame(tableFrame)
			pte.SetFlags(FlagValid)
			return true
		}

		if pte.IsLeaf() {
			err = errMegapageUnsupported
			return false
		}

		return true
	})

	return err
}

// IdentityMapRegion maps every page in [start, end) to itself. start is
// rounded down and end rounded up to a page boundary.
func (pdt PageDirectoryTable) IdentityMapRegion(start, end uintptr, flags PageTableEntryFlag) *kernel.Error {
	endPage := mm.PageFromAddress(mm.AlignUp(end))
	for page := mm.PageFromAddress(start); page < endPage; page++ {
		if err := pdt.Map(page.Address(), page.Address(), flags); err != nil {
			return err
		}
	}

	return nil
}

// Translate returns the physical address and flags for virtAddr or
// ErrInvalidMapping if it is not mapped.
func (pdt PageDirectoryTable) Translate(virtAddr uintptr) (uintptr, PageTableEntryFlag, *kernel.Error) {
	var (
		physAddr uintptr
		flags    PageTableEntryFlag
		err      = ErrInvalidMapping
	)

	walk(pdt.rootFrame, virtAddr, func(level uint8, pte *pageTableEntry) bool {
		if !pte.HasFlags(FlagValid) {
			return false
		}

		if level == pageLevels-1 {
			physAddr = pte.Frame().Address() + virtAddr&mm.PageOffsetMask
			flags, err = pte.Flags(), nil
			return true
		}

		if pte.IsLeaf() {
			err = errMegapageUnsupported
			return false
		}

		return true
	})

	return physAddr, flags, err
}

// MappingVisitor receives a mapped page. Returning false stops the visit.
type MappingVisitor func(virtAddr, physAddr uintptr, flags PageTableEntryFlag) bool

// Visit calls visitor for every mapped page in ascending virtual address
// order.
func (pdt PageDirectoryTable) Visit(visitor MappingVisitor) {
	outer := tableAtFn(pdt.rootFrame)
	for i := range outer {
		if !outer[i].HasFlags(FlagValid) || outer[i].IsLeaf() {
			continue
		}

		inner := tableAtFn(outer[i].Frame())
		for j := range inner {
			if !inner[j].HasFlags(FlagValid) {
				continue
			}

			page := mm.Page(uintptr(i)<<pageLevelBits[1] | uintptr(j))
			if !visitor(page.Address(), inner[j].Frame().Address(), inner[j].Flags()) {
				return
			}
		}
	}
}

// VisitTables calls visitor with the frame of the root table and of every
// inner table, root first.
func (pdt PageDirectoryTable) VisitTables(visitor func(level uint8, frame mm.Frame)) {
	visitor(0, pdt.rootFrame)

	outer := tableAtFn(pdt.rootFrame)
	for i := range outer {
		if outer[i].HasFlags(FlagValid) && !outer[i].IsLeaf() {
			visitor(1, outer[i].Frame())
		}
	}
}

// SATP returns the satp value that selects this address space.
func (pdt PageDirectoryTable) SATP() uintptr {
	return cpu.SATPModeSv32 | uintptr(pdt.rootFrame)&cpu.SATPPPNMask
}

// Activate fences outstanding translations and installs this table in
// satp.
func (pdt PageDirectoryTable) Activate() {
	flushTLBFn()
	writeSATPFn(pdt.SATP())
}
