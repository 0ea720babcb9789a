package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	"rvos/kernel/kmain"
	"rvos/kernel/mm"
)

func TestConfigLayout(t *testing.T) {
	cfg := config{imageSize: 256 * mm.Kb, freeRAM: 64 * mm.Kb}

	layout, err := cfg.layout()
	if err != nil {
		t.Fatal(err)
	}

	exp := kmain.Layout{
		KernelBase:   0x80200000,
		BSSStart:     0x80210000,
		BSSEnd:       0x80220000,
		StackTop:     0x80240000,
		FreeRAMStart: 0x80340000,
		FreeRAMEnd:   0x80350000,
	}
	if layout != exp {
		t.Fatalf("expected layout %+v; got %+v", exp, layout)
	}

	specs := []config{
		{imageSize: 64 * mm.Kb, freeRAM: 64 * mm.Kb},
		{imageSize: 256 * mm.Kb, freeRAM: 100},
	}

	for specIndex, spec := range specs {
		if _, err := spec.layout(); err == nil {
			t.Errorf("[spec %d] expected an error", specIndex)
		}
	}
}

func TestLimitedConsole(t *testing.T) {
	var buf bytes.Buffer
	console := newLimitedConsole(&buf, 5)

	if n, err := console.Write([]byte("abc")); n != 3 || err != nil {
		t.Fatalf("expected to write 3 bytes; got %d (err: %v)", n, err)
	}

	go console.Write([]byte("defg"))

	select {
	case <-console.full:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the console to fill up")
	}

	if got := buf.String(); got != "abcde" {
		t.Fatalf("expected console to contain %q; got %q", "abcde", got)
	}

	if got := console.Written(); got != 5 {
		t.Fatalf("expected 5 bytes to be written; got %d", got)
	}
}

func TestFinishSkipsReportOnTimeout(t *testing.T) {
	var (
		logs    bytes.Buffer
		mapPath = filepath.Join(t.TempDir(), "memmap.png")
		cfg     = config{imageSize: 256 * mm.Kb, freeRAM: 64 * mm.Kb, mapPNG: mapPath}
	)

	logger := hclog.New(&hclog.LoggerOptions{Output: &logs, Level: hclog.Trace})
	layout, _ := cfg.layout()

	if err := finish(cfg, layout, stopTimeout, logger); err != nil {
		t.Fatal(err)
	}

	if out := logs.String(); !strings.Contains(out, "skipping report") || strings.Contains(out, "scheduler") {
		t.Fatalf("expected the report to be skipped; got:\n%s", out)
	}

	if _, err := os.Stat(mapPath); !os.IsNotExist(err) {
		t.Fatalf("expected no memory map to be written; got %v", err)
	}
}

func TestRun(t *testing.T) {
	var (
		console bytes.Buffer
		mapPath = filepath.Join(t.TempDir(), "memmap.png")
		cfg     = config{
			imageSize: 256 * mm.Kb,
			freeRAM:   64 * mm.Kb,
			maxOutput: 2048,
			timeout:   10 * time.Second,
			mapPNG:    mapPath,
			console:   &console,
		}
	)

	if err := run(cfg, hclog.NewNullLogger()); err != nil {
		t.Fatal(err)
	}

	out := console.String()
	if len(out) != cfg.maxOutput {
		t.Fatalf("expected %d bytes of console output; got %d", cfg.maxOutput, len(out))
	}

	if !strings.Contains(out, "[kmain] rvos booting\n") || !strings.Contains(out, "ABABABAB") {
		t.Fatalf("expected boot banner followed by worker output; got:\n%s", out)
	}

	if info, err := os.Stat(mapPath); err != nil || info.Size() == 0 {
		t.Fatalf("expected a memory map to be written; got %v", err)
	}

	layout, _ := cfg.layout()
	counts := map[pageKind]int{}
	for _, kind := range classifyPages(layout, kmain.Scheduler()) {
		counts[kind]++
	}

	// Idle and both workers own a root table and one inner table each.
	if counts[pageKernel] != 320 || counts[pageTable] != 6 || counts[pageAllocated] != 0 || counts[pageFree] != 10 {
		t.Fatalf("unexpected page classification: %v", counts)
	}

	procs := summarize(kmain.Scheduler())
	if len(procs) != 3 || procs[0].pid != -1 || procs[1].pid != 2 || procs[2].pid != 3 {
		t.Fatalf("expected processes -1, 2 and 3; got %+v", procs)
	}

	if !procs[0].idle || procs[1].idle || procs[2].idle {
		t.Fatalf("expected only pid -1 to be reported as idle; got %+v", procs)
	}

	// The console fills up while a worker holds the hart, so exactly that
	// worker's address space is active.
	for _, p := range procs {
		if p.active != p.current || (p.current && p.idle) {
			t.Fatalf("expected the current worker's address space to be active; got %+v", procs)
		}
	}

	if procs[1].mapped != 336 {
		t.Fatalf("expected 336 identity mapped pages; got %d", procs[1].mapped)
	}
}
