//go:build !tinygo.riscv32

package kmain

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"rvos/kernel/cpu"
	"rvos/kernel/kfmt"
	"rvos/kernel/mm"
	"rvos/kernel/sbi"
	"rvos/kernel/trap"
)

func TestKmainRunsWorkers(t *testing.T) {
	layout := Layout{
		KernelBase:   0x80200000,
		BSSStart:     0x80210000,
		BSSEnd:       0x80212000,
		StackTop:     0x80222000,
		FreeRAMStart: 0x80222000,
		FreeRAMEnd:   0x80232000,
	}

	mm.SetPhysMemory(layout.FreeRAMStart, make([]byte, layout.FreeRAMEnd-layout.FreeRAMStart))
	cpu.Reset()

	var console bytes.Buffer
	sbi.SetConsole(&console)

	defer func() {
		putcharFn = sbi.Putchar
		sbi.SetConsole(nil)
		kfmt.SetOutputSink(nil)
		mm.SetFrameAllocator(nil)
		mm.SetPhysMemory(0, nil)
		cpu.Reset()
	}()

	var (
		mu    sync.Mutex
		trace []byte
		done  = make(chan struct{})
	)

	// After six characters the worker holding the hart parks for good,
	// which stops the whole kernel.
	putcharFn = func(ch byte) sbi.Error {
		mu.Lock()
		trace = append(trace, ch)
		full := len(trace) == 6
		mu.Unlock()

		if full {
			close(done)
			select {}
		}
		return sbi.Success
	}

	go Kmain(layout)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the workers")
	}

	mu.Lock()
	got := string(trace)
	mu.Unlock()

	if got != "ABABAB" {
		t.Fatalf("expected workers to alternate; got %q", got)
	}

	out := console.String()
	for _, exp := range []string{
		"[kmain] rvos booting\n",
		"[kmain] kernel base 0x80200000, bss [0x80210000 - 0x80212000], stack top 0x80222000\n",
		"[pmm] free RAM [0x80222000 - 0x80232000]",
		"[kmain] yields: 0, switches: 0\n",
	} {
		if !strings.Contains(out, exp) {
			t.Errorf("expected console output to contain %q; got:\n%s", exp, out)
		}
	}

	if got := cpu.ReadSTVec(); got != trap.HostVector {
		t.Errorf("expected stvec to point to the trap vector; got 0x%x", got)
	}

	if p := sched.Process(3); p == nil || sched.Process(-1) == nil {
		t.Error("expected idle and both workers to exist")
	}

	if stats := sched.Stats(); stats.Switches != 6 {
		t.Errorf("expected 6 context switches; got %d", stats.Switches)
	}
}

func TestWorkerEntriesStable(t *testing.T) {
	first := workerEntries()
	for i, entry := range first {
		if entry == 0 {
			t.Fatalf("[spec %d] expected a registered entry point", i)
		}
	}

	if first[0] == first[1] {
		t.Fatalf("expected distinct entry points for the two workers; got 0x%x twice", first[0])
	}

	if again := workerEntries(); again != first {
		t.Fatalf("expected entry points to be registered once; got %x then %x", first, again)
	}
}
