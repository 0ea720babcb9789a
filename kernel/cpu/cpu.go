// Package cpu exposes the RISC-V supervisor control registers used by the
// kernel: the trap vector (stvec), the trap scratch register (sscratch), the
// address translation register (satp) and the trap cause registers (scause,
// stval, sepc).
//
// On the target (TinyGo, riscv32) every accessor compiles down to a single
// CSR instruction. Hosted builds keep the same API on top of a simulated
// register file so the rest of the kernel can be exercised by tests and by
// the rvsim simulator.
package cpu

const (
	// SATPModeSv32 is the satp MODE bit selecting Sv32 translation. The
	// remaining 22 low bits hold the physical page number of the root
	// page table.
	SATPModeSv32 = uintptr(1 << 31)

	// SATPPPNMask extracts the root page number from a satp value.
	SATPPPNMask = uintptr(1<<22 - 1)

	// CauseInterrupt is set in scause when the trap was caused by an
	// interrupt rather than a synchronous exception.
	CauseInterrupt = uintptr(1 << 31)

	// CauseCodeMask extracts the exception or interrupt code from scause.
	CauseCodeMask = CauseInterrupt - 1
)
