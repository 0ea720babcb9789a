// Package kmain contains the kernel initialization sequence.
package kmain

import (
	"rvos/kernel"
	"rvos/kernel/kfmt"
	"rvos/kernel/mm/pmm"
	"rvos/kernel/proc"
	"rvos/kernel/sbi"
	"rvos/kernel/trap"
)

// Layout carries the addresses the linker script exports.
type Layout struct {
	KernelBase   uintptr // __kernel_base
	BSSStart     uintptr // __bss
	BSSEnd       uintptr // __bss_end
	StackTop     uintptr // __stack_top
	FreeRAMStart uintptr // __free_ram
	FreeRAMEnd   uintptr // __free_ram_end
}

var (
	errIdleResumed = &kernel.Error{Module: "kmain", Message: "switched to idle process"}

	procTable proc.Table

	// sched is shared with the worker entry points, which cannot take
	// arguments.
	sched proc.Scheduler

	// switcherFn is replaced by tests.
	switcherFn = proc.DefaultSwitcher

	// bootLog prefixes the boot messages. It is a package variable so that
	// handing it out as an io.Writer does not allocate.
	bootLog = kfmt.PrefixWriter{Prefix: []byte("[kmain] ")}
)

// Scheduler returns the scheduler set up by Kmain.
func Scheduler() *proc.Scheduler {
	return &sched
}

// Kmain brings up the console, the trap vector, the page allocator and the
// process table, starts the demo workers and yields to them. The boot
// context becomes the idle process.
//
// Kmain is not expected to return. If the idle process is ever scheduled
// again it panics.
//
//go:noinline
func Kmain(layout Layout) {
	kfmt.SetOutputSink(sbi.Console{})
	bootLog.Sink = kfmt.GetOutputSink()
	w := &bootLog

	kfmt.Fprintf(w, "rvos booting\n")
	kfmt.Fprintf(w, "kernel base 0x%8x, bss [0x%8x - 0x%8x], stack top 0x%8x\n",
		layout.KernelBase, layout.BSSStart, layout.BSSEnd, layout.StackTop)

	var err *kernel.Error
	if err = trap.Init(); err != nil {
		kfmt.Panic(err)
		return
	}

	if err = pmm.Init(layout.FreeRAMStart, layout.FreeRAMEnd); err != nil {
		kfmt.Panic(err)
		return
	}

	procTable.Init(proc.Layout{KernelBase: layout.KernelBase, FreeRAMEnd: layout.FreeRAMEnd})
	sched.Init(&procTable, switcherFn())

	if _, err = sched.InstallIdle(); err != nil {
		kfmt.Panic(err)
		return
	}

	for _, entry := range workerEntries() {
		if _, err = sched.Spawn(entry); err != nil {
			kfmt.Panic(err)
			return
		}
	}

	sched.Dump(w)
	sched.Yield()

	kfmt.Panic(errIdleResumed)
}
