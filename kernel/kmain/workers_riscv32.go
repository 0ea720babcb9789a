//go:build tinygo.riscv32

package kmain

import "device/riscv"

// Addresses of the worker entry points, emitted by arch/riscv32/entry.S.
//
//go:extern proc_a_entry
var procAEntry uintptr

//go:extern proc_b_entry
var procBEntry uintptr

//export kmain_proc_a
func exportedProcA() { procA() }

//export kmain_proc_b
func exportedProcB() { procB() }

func workerEntries() [numWorkers]uintptr {
	return [numWorkers]uintptr{procAEntry, procBEntry}
}

// delay busy-waits so that the console output stays readable.
func delay() {
	for i := 0; i < 30000000; i++ {
		riscv.Asm("nop")
	}
}
