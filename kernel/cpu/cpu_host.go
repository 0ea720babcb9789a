//go:build !tinygo.riscv32

package cpu

import "sync"

// RegisterFile is a snapshot of the simulated supervisor registers used by
// hosted builds.
type RegisterFile struct {
	SATP, SScratch, STVec uintptr
	SCause, STVal, SEPC   uintptr

	// Access counters.
	SATPWrites, SScratchWrites uint64
	TLBFlushes, WFICount       uint64
}

var (
	regsMu sync.Mutex
	regs   RegisterFile

	// haltFn runs when Halt is called. A real hart never leaves its wfi
	// loop; the default blocks the calling goroutine forever.
	haltFn = blockForever
)

func blockForever() { select {} }

// WriteSATP loads a new value into the satp register.
func WriteSATP(value uintptr) {
	regsMu.Lock()
	regs.SATP = value
	regs.SATPWrites++
	regsMu.Unlock()
}

// ReadSATP returns the active satp value.
func ReadSATP() uintptr {
	regsMu.Lock()
	defer regsMu.Unlock()
	return regs.SATP
}

// FlushTLB discards all cached address translations.
func FlushTLB() {
	regsMu.Lock()
	regs.TLBFlushes++
	regsMu.Unlock()
}

// WriteSScratch sets the value the trap trampoline swaps into sp.
func WriteSScratch(value uintptr) {
	regsMu.Lock()
	regs.SScratch = value
	regs.SScratchWrites++
	regsMu.Unlock()
}

// ReadSScratch returns the current sscratch value.
func ReadSScratch() uintptr {
	regsMu.Lock()
	defer regsMu.Unlock()
	return regs.SScratch
}

// WriteSTVec installs the trap vector base address.
func WriteSTVec(addr uintptr) {
	regsMu.Lock()
	regs.STVec = addr
	regsMu.Unlock()
}

// ReadSTVec returns the installed trap vector.
func ReadSTVec() uintptr {
	regsMu.Lock()
	defer regsMu.Unlock()
	return regs.STVec
}

// ReadSCause returns the cause of the last trap.
func ReadSCause() uintptr {
	regsMu.Lock()
	defer regsMu.Unlock()
	return regs.SCause
}

// ReadSTVal returns the trap value of the last trap.
func ReadSTVal() uintptr {
	regsMu.Lock()
	defer regsMu.Unlock()
	return regs.STVal
}

// ReadSEPC returns the program counter of the last trapping instruction.
func ReadSEPC() uintptr {
	regsMu.Lock()
	defer regsMu.Unlock()
	return regs.SEPC
}

// WaitForInterrupt records a wfi. There are no interrupt sources on the
// host so it returns immediately.
func WaitForInterrupt() {
	regsMu.Lock()
	regs.WFICount++
	regsMu.Unlock()
}

// Halt parks the hart with a wfi and invokes the registered halt handler.
func Halt() {
	WaitForInterrupt()

	regsMu.Lock()
	fn := haltFn
	regsMu.Unlock()
	fn()
}

// LatchTrap loads the trap cause registers the way the hardware does right
// before it vectors to stvec.
func LatchTrap(cause, tval, epc uintptr) {
	regsMu.Lock()
	regs.SCause, regs.STVal, regs.SEPC = cause, tval, epc
	regsMu.Unlock()
}

// SetHaltHandler replaces the function invoked by Halt. Passing nil
// restores the default handler which blocks forever.
func SetHaltHandler(fn func()) {
	if fn == nil {
		fn = blockForever
	}

	regsMu.Lock()
	haltFn = fn
	regsMu.Unlock()
}

// Registers returns a copy of the simulated register file.
func Registers() RegisterFile {
	regsMu.Lock()
	defer regsMu.Unlock()
	return regs
}

// Reset clears the simulated register file.
func Reset() {
	regsMu.Lock()
	regs = RegisterFile{}
	regsMu.Unlock()
}
