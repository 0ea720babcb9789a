package vmm

import "rvos/kernel/mm"

// pageTableEntry is an Sv32 page table entry: PPN<<10 | flags.
type pageTableEntry uint32

// HasFlags returns true if this entry has all the input flags set.
func (pte pageTableEntry) HasFlags(flags PageTableEntryFlag) bool {
	return uint32(pte)&uint32(flags) == uint32(flags)
}

// HasAnyFlag returns true if this entry has at least one of the input flags
// set.
func (pte pageTableEntry) HasAnyFlag(flags PageTableEntryFlag) bool {
	return uint32(pte)&uint32(flags) != 0
}

// SetFlags sets the input list of flags.
func (pte *pageTableEntry) SetFlags(flags PageTableEntryFlag) {
	*pte |= pageTableEntry(flags)
}

// ClearFlags unsets the input list of flags.
func (pte *pageTableEntry) ClearFlags(flags PageTableEntryFlag) {
	*pte &^= pageTableEntry(flags)
}

// Flags returns the flag bits of the entry.
func (pte pageTableEntry) Flags() PageTableEntryFlag {
	return PageTableEntryFlag(pte & pteFlagMask)
}

// Frame returns the physical frame the entry points to.
func (pte pageTableEntry) Frame() mm.Frame {
	return mm.Frame(pte >> ptePPNShift)
}

// SetFrame points the entry at frame, keeping its flags.
func (pte *pageTableEntry) SetFrame(frame mm.Frame) {
	*pte = pageTableEntry(uint32(frame)<<ptePPNShift) | *pte&pteFlagMask
}

// IsLeaf reports whether a valid entry maps memory rather than pointing to
// the next level table.
func (pte pageTableEntry) IsLeaf() bool {
	return pte.HasAnyFlag(FlagRWX)
}
