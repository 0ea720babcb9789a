//go:build !tinygo.riscv32

package kmain

import "rvos/kernel/proc"

var hostEntries [numWorkers]uintptr

func workerEntries() [numWorkers]uintptr {
	if hostEntries[0] == 0 {
		hostEntries = [numWorkers]uintptr{proc.EntryFor(procA), proc.EntryFor(procB)}
	}
	return hostEntries
}

func delay() {}
