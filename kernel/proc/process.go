// Package proc implements the kernel's fixed-size process table, the
// context switch primitive and the cooperative round-robin scheduler.
package proc

import "rvos/kernel/mm/vmm"

const (
	// MaxProcs is the capacity of the process table.
	MaxProcs = 8

	// idlePID is the pid given to the idle process.
	idlePID = -1
)

// State is the lifecycle state of a process table slot. A running process
// is simply the scheduler's current process; it keeps StateReady.
type State uint8

// Slot states. Slots only ever move from StateUnused to StateReady.
const (
	StateUnused State = iota
	StateReady
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUnused:
		return "unused"
	case StateReady:
		return "ready"
	default:
		return "invalid"
	}
}

// Process is a process control block.
type Process struct {
	// pid is 0 for unused slots, -1 for the idle process and slot+1 for
	// everything else. Pids are never reused.
	pid int

	state State

	// sp is the saved stack pointer while the process is not running.
	sp uintptr

	pdt vmm.PageDirectoryTable

	stack Stack
}

// PID returns the process id.
func (p *Process) PID() int { return p.pid }

// State returns the slot state.
func (p *Process) State() State { return p.state }

// SP returns the saved stack pointer.
func (p *Process) SP() uintptr { return p.sp }

// PageTable returns the root of the process address space.
func (p *Process) PageTable() vmm.PageDirectoryTable { return p.pdt }

// Stack returns the process kernel stack.
func (p *Process) Stack() *Stack { return &p.stack }

// IsIdle reports whether p is the idle process.
func (p *Process) IsIdle() bool { return p.pid == idlePID }

// eligible reports whether p may be picked by the scheduler ahead of the
// idle process.
func (p *Process) eligible() bool {
	return p.state == StateReady && p.pid > 0
}
