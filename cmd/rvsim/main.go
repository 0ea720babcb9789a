// Command rvsim runs the rvos kernel on the host. Physical RAM is an
// anonymous mapping, the SBI console is a terminal (or stdout) and every
// process runs on its own goroutine with a single one holding the hart at
// any time.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"rvos/kernel/mm"
)

func main() {
	var (
		cfg      config
		freeRAM  = flag.Uint64("free-ram", 64*1024, "size of the free RAM region in KiB")
		image    = flag.Uint64("image-size", 512, "size of the kernel image, bss and boot stack in KiB")
		logLevel = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	)

	flag.IntVar(&cfg.maxOutput, "chars", 4096, "stop once the console has received this many bytes (0 disables the limit)")
	flag.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "stop the simulation after this long")
	flag.StringVar(&cfg.ttyPath, "tty", "", `console device; empty for stdout, "tty" for the controlling terminal`)
	flag.StringVar(&cfg.mapPNG, "map-png", "", "write a physical memory map to this PNG file")
	flag.Parse()

	cfg.imageSize = mm.Size(*image) * mm.Kb
	cfg.freeRAM = mm.Size(*freeRAM) * mm.Kb

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "rvsim",
		Level:  hclog.LevelFromString(*logLevel),
		Output: os.Stderr,
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("simulation failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
