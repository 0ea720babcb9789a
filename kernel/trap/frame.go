// Package trap handles supervisor traps. The assembly trampoline
// kernel_entry (arch/riscv32/entry.S) swaps sp with sscratch so that traps
// always run on the kernel stack of the current process, spills the
// registers into a Frame and calls Handle.
package trap

import (
	"io"

	"rvos/kernel/kfmt"
)

// FrameWords is the number of 32-bit words kernel_entry reserves on the
// kernel stack.
const FrameWords = 31

// Frame is the register state saved by kernel_entry, in stack order. SP is
// the stack pointer of the interrupted context.
type Frame struct {
	RA, GP, TP                     uint32
	T0, T1, T2, T3, T4, T5, T6     uint32
	A0, A1, A2, A3, A4, A5, A6, A7 uint32
	S0, S1, S2, S3, S4, S5         uint32
	S6, S7, S8, S9, S10, S11       uint32
	SP                             uint32
}

// DumpTo outputs the register contents to w.
func (f *Frame) DumpTo(w io.Writer) {
	kfmt.Fprintf(w, "ra  = %8x sp  = %8x gp  = %8x tp  = %8x\n", f.RA, f.SP, f.GP, f.TP)
	kfmt.Fprintf(w, "t0  = %8x t1  = %8x t2  = %8x t3  = %8x\n", f.T0, f.T1, f.T2, f.T3)
	kfmt.Fprintf(w, "t4  = %8x t5  = %8x t6  = %8x\n", f.T4, f.T5, f.T6)
	kfmt.Fprintf(w, "a0  = %8x a1  = %8x a2  = %8x a3  = %8x\n", f.A0, f.A1, f.A2, f.A3)
	kfmt.Fprintf(w, "a4  = %8x a5  = %8x a6  = %8x a7  = %8x\n", f.A4, f.A5, f.A6, f.A7)
	kfmt.Fprintf(w, "s0  = %8x s1  = %8x s2  = %8x s3  = %8x\n", f.S0, f.S1, f.S2, f.S3)
	kfmt.Fprintf(w, "s4  = %8x s5  = %8x s6  = %8x s7  = %8x\n", f.S4, f.S5, f.S6, f.S7)
	kfmt.Fprintf(w, "s8  = %8x s9  = %8x s10 = %8x s11 = %8x\n", f.S8, f.S9, f.S10, f.S11)
}
