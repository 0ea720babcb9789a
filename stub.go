//go:build tinygo.riscv32

package main

import (
	"unsafe"

	"rvos/kernel/kmain"
)

// Symbols exported by arch/riscv32/kernel.ld. Only their addresses are
// meaningful.

//go:extern __kernel_base
var kernelBase [0]byte

//go:extern __bss
var bssStart [0]byte

//go:extern __bss_end
var bssEnd [0]byte

//go:extern __stack_top
var stackTop [0]byte

//go:extern __free_ram
var freeRAMStart [0]byte

//go:extern __free_ram_end
var freeRAMEnd [0]byte

// kernelMain is entered from the boot code in arch/riscv32/entry.S once the
// stack is set up and .bss is cleared.
//
//export kernel_main
func kernelMain() {
	kmain.Kmain(kmain.Layout{
		KernelBase:   addr(&kernelBase),
		BSSStart:     addr(&bssStart),
		BSSEnd:       addr(&bssEnd),
		StackTop:     addr(&stackTop),
		FreeRAMStart: addr(&freeRAMStart),
		FreeRAMEnd:   addr(&freeRAMEnd),
	})
}

func addr(sym *[0]byte) uintptr {
	return uintptr(unsafe.Pointer(sym))
}

// main is never reached on the boot path. It references kernelMain so the
// toolchain keeps it.
func main() {
	kernelMain()
}
