//go:build !tinygo.riscv32

package proc

import (
	"testing"

	"rvos/kernel/mm"
	"rvos/kernel/mm/pmm"
	"rvos/kernel/mm/vmm"
)

func TestCreateAssignsPidsUntilFull(t *testing.T) {
	setupTestRAM(t)
	table := NewTable(testLayout)

	for expPID := 1; expPID <= MaxProcs; expPID++ {
		p, err := table.Create(0x80200100)
		if err != nil {
			t.Fatalf("unexpected error creating process %d: %v", expPID, err)
		}

		if p.PID() != expPID || p.State() != StateReady {
			t.Errorf("expected pid %d in state ready; got pid %d in state %s", expPID, p.PID(), p.State())
		}
	}

	if _, err := table.Create(0x80200100); err != ErrNoFreeSlot {
		t.Fatalf("expected ErrNoFreeSlot; got %v", err)
	}

	if got := table.Len(); got != MaxProcs {
		t.Fatalf("expected %d used slots; got %d", MaxProcs, got)
	}

	if p := table.Process(5); p == nil || p.PID() != 5 {
		t.Fatal("expected to find process 5")
	}

	if table.Process(0) != nil || table.Process(9) != nil {
		t.Fatal("expected lookups of unknown pids to return nil")
	}
}

func TestCreateInitialFrameAndAddressSpace(t *testing.T) {
	setupTestRAM(t)
	table := NewTable(testLayout)

	const entry = uintptr(0x80200abc)
	p, err := table.Create(entry)
	if err != nil {
		t.Fatal(err)
	}

	stack := p.Stack()
	if exp := stack.Top() - frameSize; p.SP() != exp {
		t.Fatalf("expected saved sp to be 0x%x; got 0x%x", exp, p.SP())
	}

	if stack.Top()%stackAlign != 0 || !stack.Contains(p.SP()) {
		t.Fatalf("expected aligned stack top and sp inside the stack")
	}

	frame, ok := stack.FrameAt(p.SP())
	if !ok {
		t.Fatal("expected a frame at the saved sp")
	}

	if frame.RA != uint32(entry) {
		t.Fatalf("expected ra to be 0x%x; got 0x%x", entry, frame.RA)
	}

	for i, reg := range frame.S {
		if reg != 0 {
			t.Errorf("expected s%d to be zero; got 0x%x", i, reg)
		}
	}

	specs := []struct {
		addr      uintptr
		expMapped bool
	}{
		{testLayout.KernelBase, true},
		{0x80210000, true},
		{testLayout.FreeRAMEnd - mm.PageSize, true},
		{testLayout.FreeRAMEnd, false},
		{testLayout.KernelBase - mm.PageSize, false},
	}

	for specIndex, spec := range specs {
		phys, flags, err := p.PageTable().Translate(spec.addr)
		if !spec.expMapped {
			if err != vmm.ErrInvalidMapping {
				t.Errorf("[spec %d] expected 0x%x to be unmapped; got %v", specIndex, spec.addr, err)
			}
			continue
		}

		if err != nil || phys != spec.addr || flags != vmm.FlagValid|vmm.FlagRWX {
			t.Errorf("[spec %d] expected RWX identity mapping for 0x%x; got 0x%x flags 0x%x err %v", specIndex, spec.addr, phys, flags, err)
		}
	}
}

func TestCreateOutOfMemoryKeepsSlotFree(t *testing.T) {
	setupTestRAM(t)

	alloc := new(pmm.BumpAllocator)
	alloc.Init(0x80220000, 0x80221000)
	mm.SetFrameAllocator(alloc.AllocFrame)

	table := NewTable(testLayout)
	if _, err := table.Create(0x80200100); err != pmm.ErrOutOfMemory {
		t.Fatalf("expected pmm.ErrOutOfMemory; got %v", err)
	}

	if got := table.Len(); got != 0 {
		t.Fatalf("expected no slot to be used; got %d", got)
	}
}

func TestStackFrameAt(t *testing.T) {
	var stack Stack

	specs := []struct {
		sp    uintptr
		expOK bool
	}{
		{stack.Base(), true},
		{stack.Base() + StackSize - frameSize, true},
		{stack.Base() + StackSize - frameSize + 1, false},
		{stack.Base() - 4, false},
	}

	for specIndex, spec := range specs {
		if _, ok := stack.FrameAt(spec.sp); ok != spec.expOK {
			t.Errorf("[spec %d] expected FrameAt to return %t", specIndex, spec.expOK)
		}
	}
}

func TestStateString(t *testing.T) {
	specs := []struct {
		state State
		exp   string
	}{
		{StateUnused, "unused"},
		{StateReady, "ready"},
		{State(42), "invalid"},
	}

	for specIndex, spec := range specs {
		if got := spec.state.String(); got != spec.exp {
			t.Errorf("[spec %d] expected %q; got %q", specIndex, spec.exp, got)
		}
	}
}
