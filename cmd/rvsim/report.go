package main

import (
	"bytes"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/exp/slices"

	"rvos/kernel/cpu"
	"rvos/kernel/mm/pmm"
	"rvos/kernel/mm/vmm"
	"rvos/kernel/proc"
)

// procSummary is the part of a process that the report prints.
type procSummary struct {
	pid     int
	state   string
	satp    uintptr
	idle    bool
	current bool
	mapped  int

	// active is set when satp selects this process's address space.
	active bool
}

// summarize collects the processes known to sched ordered by pid, idle
// first.
func summarize(sched *proc.Scheduler) []procSummary {
	var procs []procSummary

	satp := cpu.ReadSATP()
	sched.VisitProcesses(func(p *proc.Process) {
		summary := procSummary{
			pid:     p.PID(),
			state:   p.State().String(),
			satp:    p.PageTable().SATP(),
			idle:    p.IsIdle(),
			current: p == sched.Current(),
		}
		summary.active = summary.satp == satp
		p.PageTable().Visit(func(_, _ uintptr, _ vmm.PageTableEntryFlag) bool {
			summary.mapped++
			return true
		})
		procs = append(procs, summary)
	})

	slices.SortFunc(procs, func(a, b procSummary) int {
		return a.pid - b.pid
	})

	return procs
}

// writeReport logs the scheduler, allocator and CSR state.
func writeReport(logger hclog.Logger, sched *proc.Scheduler) {
	stats := sched.Stats()
	logger.Info("scheduler", "yields", stats.Yields, "switches", stats.Switches)

	for _, p := range summarize(sched) {
		logger.Info("process",
			"pid", p.pid,
			"state", p.state,
			"idle", p.idle,
			"current", p.current,
			"active", p.active,
			"satp", hclog.Hex(p.satp),
			"mapped_pages", p.mapped,
		)
	}

	alloc := pmm.GetStats()
	logger.Info("physical memory",
		"allocated_pages", alloc.AllocatedPages,
		"free_pages", alloc.FreePages,
		"next", hclog.Hex(alloc.Next),
	)

	regs := cpu.Registers()
	logger.Debug("csr",
		"satp", hclog.Hex(cpu.ReadSATP()),
		"sscratch", hclog.Hex(cpu.ReadSScratch()),
		"stvec", hclog.Hex(cpu.ReadSTVec()),
		"satp_writes", regs.SATPWrites,
		"tlb_flushes", regs.TLBFlushes,
	)

	if logger.IsTrace() {
		var buf bytes.Buffer
		sched.Dump(&buf)
		for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
			logger.Trace(line)
		}
	}
}
