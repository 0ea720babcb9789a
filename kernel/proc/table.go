package proc

import (
	"rvos/kernel"
	"rvos/kernel/mm/vmm"
)

// ErrNoFreeSlot is returned by Create when all MaxProcs slots are in use.
var ErrNoFreeSlot = &kernel.Error{Module: "proc", Message: "no free process slots"}

// Layout describes the physical region every process address space
// identity maps: the kernel image followed by free RAM.
type Layout struct {
	KernelBase uintptr
	FreeRAMEnd uintptr
}

// Table is the fixed-capacity process table.
type Table struct {
	procs  [MaxProcs]Process
	layout Layout
}

// NewTable returns an empty table whose processes map layout.
func NewTable(layout Layout) *Table {
	t := new(Table)
	t.Init(layout)
	return t
}

// Init resets t to an empty table whose processes map layout.
func (t *Table) Init(layout Layout) {
	for i := range t.procs {
		t.procs[i].pid = 0
		t.procs[i].state = StateUnused
		t.procs[i].sp = 0
	}
	t.layout = layout
}

// Create claims the first unused slot for a process that starts executing
// at entry. The new process gets pid slot+1, an address space that identity
// maps the kernel and free RAM with RWX permissions and an initial frame
// on its stack that returns into entry. On error no slot is consumed.
func (t *Table) Create(entry uintptr) (*Process, *kernel.Error) {
	var p *Process
	slot := 0
	for ; slot < MaxProcs; slot++ {
		if t.procs[slot].state == StateUnused {
			p = &t.procs[slot]
			break
		}
	}

	if p == nil {
		return nil, ErrNoFreeSlot
	}

	pdt, err := vmm.NewPageDirectoryTable()
	if err != nil {
		return nil, err
	}

	if err = pdt.IdentityMapRegion(t.layout.KernelBase, t.layout.FreeRAMEnd, vmm.FlagRWX); err != nil {
		return nil, err
	}

	p.pdt = pdt
	p.sp = p.stack.pushInitialFrame(entry)
	p.pid = slot + 1
	p.state = StateReady
	return p, nil
}

// Process returns the process with the given pid or nil.
func (t *Table) Process(pid int) *Process {
	if pid == 0 {
		return nil
	}

	for i := range t.procs {
		if t.procs[i].pid == pid && t.procs[i].state != StateUnused {
			return &t.procs[i]
		}
	}

	return nil
}

// Len returns the number of used slots.
func (t *Table) Len() int {
	var n int
	for i := range t.procs {
		if t.procs[i].state != StateUnused {
			n++
		}
	}
	return n
}

// slot returns the process stored at index i.
func (t *Table) slot(i int) *Process {
	return &t.procs[i]
}
