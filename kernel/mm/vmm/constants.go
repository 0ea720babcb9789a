package vmm

import "rvos/kernel/mm"

const (
	// pageLevels is the number of page table levels in Sv32.
	pageLevels = 2

	// entriesPerTable is the number of 32-bit entries in one page table.
	entriesPerTable = 1 << 10

	// ptePPNShift is the position of the physical page number inside an
	// entry.
	ptePPNShift = 10

	// pteFlagMask covers the flag bits and the two software bits.
	pteFlagMask = (1 << ptePPNShift) - 1
)

var (
	// pageLevelBits is the number of virtual address bits used to index
	// the table at each level.
	pageLevelBits = [pageLevels]uint8{10, 10}

	// pageLevelShifts is the position of each level's index inside a
	// virtual address.
	pageLevelShifts = [pageLevels]uint8{22, uint8(mm.PageShift)}
)

// PageTableEntryFlag is a flag stored in the low bits of an Sv32 entry.
type PageTableEntryFlag uint32

// Sv32 entry flags.
const (
	FlagValid PageTableEntryFlag = 1 << iota
	FlagRead
	FlagWrite
	FlagExec
	FlagUser
	FlagGlobal
	FlagAccessed
	FlagDirty

	// FlagRWX grants read, write and execute access.
	FlagRWX = FlagRead | FlagWrite | FlagExec
)
