//go:build tinygo.riscv32

package cpu

import "device/riscv"

// WriteSATP loads a new value into the satp register.
func WriteSATP(value uintptr) {
	riscv.AsmFull("csrw satp, {value}", map[string]interface{}{"value": value})
}

// ReadSATP returns the active satp value.
func ReadSATP() uintptr {
	return riscv.AsmFull("csrr {}, satp", nil)
}

// FlushTLB discards all cached address translations.
func FlushTLB() {
	riscv.Asm("sfence.vma")
}

// WriteSScratch sets the value the trap trampoline swaps into sp.
func WriteSScratch(value uintptr) {
	riscv.AsmFull("csrw sscratch, {value}", map[string]interface{}{"value": value})
}

// ReadSScratch returns the current sscratch value.
func ReadSScratch() uintptr {
	return riscv.AsmFull("csrr {}, sscratch", nil)
}

// WriteSTVec installs the trap vector base address (direct mode).
func WriteSTVec(addr uintptr) {
	riscv.AsmFull("csrw stvec, {addr}", map[string]interface{}{"addr": addr})
}

// ReadSTVec returns the installed trap vector.
func ReadSTVec() uintptr {
	return riscv.AsmFull("csrr {}, stvec", nil)
}

// ReadSCause returns the cause of the last trap.
func ReadSCause() uintptr {
	return riscv.AsmFull("csrr {}, scause", nil)
}

// ReadSTVal returns the trap value (faulting address or instruction).
func ReadSTVal() uintptr {
	return riscv.AsmFull("csrr {}, stval", nil)
}

// ReadSEPC returns the program counter of the trapping instruction.
func ReadSEPC() uintptr {
	return riscv.AsmFull("csrr {}, sepc", nil)
}

// WaitForInterrupt parks the hart until the next interrupt.
func WaitForInterrupt() {
	riscv.Asm("wfi")
}

// Halt stops instruction execution. It never returns.
func Halt() {
	for {
		WaitForInterrupt()
	}
}
