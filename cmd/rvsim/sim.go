package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-tty"
	"golang.org/x/sys/unix"

	"rvos/kernel/cpu"
	"rvos/kernel/kmain"
	"rvos/kernel/mm"
	"rvos/kernel/sbi"
)

const (
	// kernelBase is where OpenSBI loads the kernel on the QEMU virt machine.
	kernelBase = uintptr(0x80200000)

	// bootStackSize matches the boot stack reserved by kernel.ld.
	bootStackSize = 128 * mm.Kb

	// runtimeHeapSize matches the TinyGo heap kernel.ld places between the
	// boot stack and free RAM.
	runtimeHeapSize = 1 * mm.Mb
)

// config holds the simulator settings.
type config struct {
	imageSize mm.Size
	freeRAM   mm.Size
	maxOutput int
	timeout   time.Duration
	ttyPath   string
	mapPNG    string

	// console overrides ttyPath when set.
	console io.Writer
}

// layout returns the addresses the linker script would export for a kernel
// image of cfg.imageSize bytes: code and data, then .bss, then the boot
// stack, then the runtime heap, then free RAM.
func (cfg config) layout() (kmain.Layout, error) {
	if cfg.imageSize <= bootStackSize {
		return kmain.Layout{}, fmt.Errorf("image size must exceed the %d KiB boot stack", bootStackSize/mm.Kb)
	}
	if cfg.freeRAM < mm.Size(mm.PageSize) {
		return kmain.Layout{}, fmt.Errorf("free RAM must hold at least one page")
	}

	stackTop := kernelBase + uintptr(cfg.imageSize)
	bssEnd := stackTop - uintptr(bootStackSize)
	freeRAMStart := mm.AlignUp(stackTop + uintptr(runtimeHeapSize))

	return kmain.Layout{
		KernelBase:   kernelBase,
		BSSStart:     kernelBase + (bssEnd-kernelBase)/2,
		BSSEnd:       bssEnd,
		StackTop:     stackTop,
		FreeRAMStart: freeRAMStart,
		FreeRAMEnd:   freeRAMStart + uintptr(cfg.freeRAM),
	}, nil
}

// stopReason describes why a simulation ended.
type stopReason string

const (
	stopOutputLimit stopReason = "console output limit reached"
	stopHalted      stopReason = "kernel halted"
	stopTimeout     stopReason = "timeout"
)

// run boots the kernel and waits until it halts, fills the console or
// times out.
func run(cfg config, logger hclog.Logger) error {
	layout, err := cfg.layout()
	if err != nil {
		return err
	}

	ram, err := unix.Mmap(-1, 0, int(cfg.freeRAM), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return fmt.Errorf("mapping simulated RAM: %w", err)
	}
	mm.SetPhysMemory(layout.FreeRAMStart, ram)

	out := cfg.console
	if out == nil {
		dev, closeFn, err := openConsole(cfg.ttyPath)
		if err != nil {
			return err
		}
		defer closeFn()
		out = dev
	}

	console := newLimitedConsole(out, cfg.maxOutput)
	sbi.SetConsole(console)

	halted := make(chan struct{})
	var haltOnce sync.Once
	cpu.SetHaltHandler(func() {
		haltOnce.Do(func() { close(halted) })
		select {}
	})

	logger.Info("booting kernel",
		"kernel_base", hclog.Hex(layout.KernelBase),
		"free_ram", hclog.Fmt("[%#x, %#x)", layout.FreeRAMStart, layout.FreeRAMEnd),
		"timeout", cfg.timeout,
	)

	started := time.Now()
	go kmain.Kmain(layout)

	var reason stopReason
	select {
	case <-console.full:
		reason = stopOutputLimit
	case <-halted:
		reason = stopHalted
	case <-time.After(cfg.timeout):
		reason = stopTimeout
	}

	logger.Info("simulation stopped", "reason", string(reason), "elapsed", time.Since(started), "console_bytes", console.Written())

	return finish(cfg, layout, reason, logger)
}

// finish reports the state the kernel stopped in. On timeout the hart may
// still be running, so its state is not read at all.
func finish(cfg config, layout kmain.Layout, reason stopReason, logger hclog.Logger) error {
	if reason == stopTimeout {
		logger.Warn("kernel still running, skipping report")
		return nil
	}

	writeReport(logger, kmain.Scheduler())

	if cfg.mapPNG != "" {
		if err := renderMemoryMap(cfg.mapPNG, layout, kmain.Scheduler()); err != nil {
			return fmt.Errorf("rendering memory map: %w", err)
		}
		logger.Info("wrote memory map", "path", cfg.mapPNG)
	}

	if reason == stopHalted {
		return fmt.Errorf("kernel panic")
	}
	return nil
}

// openConsole opens the device used as the SBI console.
func openConsole(path string) (io.Writer, func() error, error) {
	var (
		t   *tty.TTY
		err error
	)

	switch path {
	case "":
		return os.Stdout, func() error { return nil }, nil
	case "tty":
		t, err = tty.Open()
	default:
		t, err = tty.OpenDevice(path)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("opening console %q: %w", path, err)
	}

	return t.Output(), t.Close, nil
}

// limitedConsole forwards console output until limit bytes have been
// written. The write that reaches the limit closes full and never returns,
// which freezes the process holding the hart and with it the kernel.
type limitedConsole struct {
	mu      sync.Mutex
	w       io.Writer
	limit   int
	written int
	full    chan struct{}
}

func newLimitedConsole(w io.Writer, limit int) *limitedConsole {
	return &limitedConsole{w: w, limit: limit, full: make(chan struct{})}
}

func (c *limitedConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	if c.limit > 0 && c.written+len(p) > c.limit {
		p = p[:c.limit-c.written]
	}

	n, err := c.w.Write(p)
	c.written += n
	reached := c.limit > 0 && c.written == c.limit
	c.mu.Unlock()

	if reached {
		close(c.full)
		select {}
	}

	return n, err
}

// Written returns the number of bytes forwarded so far.
func (c *limitedConsole) Written() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.written
}
