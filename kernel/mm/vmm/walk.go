package vmm

import (
	"unsafe"

	"rvos/kernel/mm"
)

// pageTable is one page worth of entries.
type pageTable [entriesPerTable]pageTableEntry

// tableAtFn is used by tests to override how a table frame is accessed.
var tableAtFn = tableAt

// tableAt returns the page table stored in frame.
func tableAt(frame mm.Frame) *pageTable {
	return (*pageTable)(unsafe.Pointer(&mm.PhysSlice(frame.Address(), mm.PageSize)[0]))
}

// pageTableWalker is invoked by walk for each entry on the path to a
// virtual address. Returning false stops the walk.
type pageTableWalker func(level uint8, pte *pageTableEntry) bool

// walk visits the entry that translates virtAddr at each level, starting at
// the table stored in root. Before descending, the walker must make sure
// that the entry it was handed points to a valid next level table.
func walk(root mm.Frame, virtAddr uintptr, walkFn pageTableWalker) {
	table := tableAtFn(root)

	for level := uint8(0); level < pageLevels; level++ {
		entryIndex := (virtAddr >> pageLevelShifts[level]) & ((1 << pageLevelBits[level]) - 1)
		pte := &table[entryIndex]

		if !walkFn(level, pte) {
			return
		}

		if level+1 < pageLevels {
			table = tableAtFn(pte.Frame())
		}
	}
}
