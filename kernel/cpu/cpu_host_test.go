//go:build !tinygo.riscv32

package cpu

import "testing"

func TestSimulatedRegisters(t *testing.T) {
	Reset()
	defer Reset()

	WriteSATP(SATPModeSv32 | 0x80210)
	WriteSATP(SATPModeSv32 | 0x80212)
	WriteSScratch(0x80400000)
	WriteSTVec(0x80200040)
	FlushTLB()
	WaitForInterrupt()
	LatchTrap(2, 0xdead, 0x80200100)

	specs := []struct {
		name     string
		got, exp uintptr
	}{
		{"satp", ReadSATP(), SATPModeSv32 | 0x80212},
		{"sscratch", ReadSScratch(), 0x80400000},
		{"stvec", ReadSTVec(), 0x80200040},
		{"scause", ReadSCause(), 2},
		{"stval", ReadSTVal(), 0xdead},
		{"sepc", ReadSEPC(), 0x80200100},
	}

	for specIndex, spec := range specs {
		if spec.got != spec.exp {
			t.Errorf("[spec %d] expected %s to be 0x%x; got 0x%x", specIndex, spec.name, spec.exp, spec.got)
		}
	}

	regs := Registers()
	if regs.SATPWrites != 2 || regs.SScratchWrites != 1 || regs.TLBFlushes != 1 || regs.WFICount != 1 {
		t.Fatalf("unexpected access counters: %+v", regs)
	}

	if got := ReadSATP() & SATPPPNMask; got != 0x80212 {
		t.Fatalf("expected satp PPN to be 0x80212; got 0x%x", got)
	}
}

func TestHaltHandler(t *testing.T) {
	Reset()
	defer func() {
		SetHaltHandler(nil)
		Reset()
	}()

	var haltCalled bool
	SetHaltHandler(func() { haltCalled = true })

	Halt()

	if !haltCalled {
		t.Fatal("expected Halt to invoke the registered handler")
	}

	if got := Registers().WFICount; got != 1 {
		t.Fatalf("expected Halt to execute one wfi; got %d", got)
	}
}
