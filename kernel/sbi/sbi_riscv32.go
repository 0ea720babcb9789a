//go:build tinygo.riscv32

package sbi

// putcharFn is replaced by tests on the host.
var putcharFn = consolePutchar

// sbi_putchar loads the legacy console extension id into a7, issues an
// ecall and returns a0. It is implemented in arch/riscv32/entry.S.
//
//export sbi_putchar
func sbi_putchar(ch uint32) int32

func consolePutchar(ch byte) Error {
	return Error(sbi_putchar(uint32(ch)))
}
