package proc

import (
	"io"

	"rvos/kernel"
	"rvos/kernel/cpu"
	"rvos/kernel/kfmt"
	"rvos/kernel/sync"
)

var (
	// writeSScratchFn is replaced by tests.
	writeSScratchFn = cpu.WriteSScratch

	errSchedulerNotReady = &kernel.Error{Module: "proc", Message: "yield called before the idle process was installed"}
)

// Stats holds scheduler counters.
type Stats struct {
	// Yields counts calls to Yield.
	Yields uint64

	// Switches counts yields that resulted in a context switch.
	Switches uint64
}

// Scheduler picks the next process to run among the processes of a Table
// and switches to it. Scheduling is cooperative: processes only give up
// the hart by calling Yield.
type Scheduler struct {
	table    *Table
	switcher Switcher

	current *Process
	idle    *Process

	// lock guards the table scan and the current process update. It is
	// released before switching.
	lock sync.Spinlock

	stats Stats
}

// NewScheduler returns a scheduler for table that switches contexts with
// switcher.
func NewScheduler(table *Table, switcher Switcher) *Scheduler {
	s := new(Scheduler)
	s.Init(table, switcher)
	return s
}

// Init resets s to schedule the processes of table.
func (s *Scheduler) Init(table *Table, switcher Switcher) {
	s.table = table
	s.switcher = switcher
	s.current, s.idle = nil, nil
	s.stats = Stats{}

	if binder, ok := switcher.(frameBinder); ok {
		binder.BindFrames(s.savedFrame)
	}
}

// savedFrame decodes the frame at the saved stack pointer of the process
// whose sp cell is cell.
func (s *Scheduler) savedFrame(cell *uintptr) (SavedFrame, bool) {
	for i := 0; i < MaxProcs; i++ {
		if p := s.table.slot(i); &p.sp == cell {
			return p.stack.FrameAt(p.sp)
		}
	}

	return SavedFrame{}, false
}

// InstallIdle creates the idle process and makes it the current process.
// The idle process never runs its own entry point: the first switch away
// from it saves the boot context, which becomes the idle context.
func (s *Scheduler) InstallIdle() (*Process, *kernel.Error) {
	p, err := s.table.Create(0)
	if err != nil {
		return nil, err
	}

	p.pid = idlePID
	s.idle, s.current = p, p
	return p, nil
}

// Spawn creates a ready process that starts executing at entry.
func (s *Scheduler) Spawn(entry uintptr) (*Process, *kernel.Error) {
	return s.table.Create(entry)
}

// Current returns the running process.
func (s *Scheduler) Current() *Process {
	return s.current
}

// Process returns the process with the given pid or nil.
func (s *Scheduler) Process(pid int) *Process {
	return s.table.Process(pid)
}

// VisitProcesses calls fn for every used slot in slot order.
func (s *Scheduler) VisitProcesses(fn func(p *Process)) {
	for i := 0; i < MaxProcs; i++ {
		if p := s.table.slot(i); p.state != StateUnused {
			fn(p)
		}
	}
}

// Stats returns the scheduler counters.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// Yield gives up the hart. The table is scanned once, starting at the slot
// that follows the current process, for a ready process with a positive
// pid. The idle process runs when there is none. If the pick is the
// current process Yield returns at once; otherwise it activates the new
// address space, points sscratch at the new kernel stack and switches.
func (s *Scheduler) Yield() {
	if s.current == nil {
		kfmt.Panic(errSchedulerNotReady)
		return
	}

	s.lock.Acquire()
	s.stats.Yields++

	next := s.pickNext()
	if next == s.current {
		s.lock.Release()
		return
	}

	prev := s.current
	s.current = next
	s.stats.Switches++
	s.lock.Release()

	next.pdt.Activate()
	writeSScratchFn(next.stack.Top())
	s.switcher.Switch(&prev.sp, &next.sp)
}

// pickNext returns the process that runs after the current one.
func (s *Scheduler) pickNext() *Process {
	start := ((s.current.pid % MaxProcs) + MaxProcs) % MaxProcs
	for i := 0; i < MaxProcs; i++ {
		if p := s.table.slot((start + i) % MaxProcs); p.eligible() {
			return p
		}
	}

	return s.idle
}

// Dump writes the process table to w. The current process is marked with
// an asterisk.
func (s *Scheduler) Dump(w io.Writer) {
	kfmt.Fprintf(w, "slot  pid  state   sp          satp\n")
	for i := 0; i < MaxProcs; i++ {
		p := s.table.slot(i)
		if p.state == StateUnused {
			continue
		}

		marker := byte(' ')
		if p == s.current {
			marker = '*'
		}

		kfmt.Fprintf(w, "%c%3d %4d  %6s  0x%8x  0x%8x\n", marker, i, p.pid, p.state.String(), p.sp, p.pdt.SATP())
	}
	kfmt.Fprintf(w, "yields: %d, switches: %d\n", s.stats.Yields, s.stats.Switches)
}
