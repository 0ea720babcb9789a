//go:build !tinygo.riscv32

package sbi

import (
	"io"
	"os"
	"sync"
)

var (
	consoleMu sync.Mutex
	console   io.Writer = os.Stdout

	putcharFn = consolePutchar
	oneByte   [1]byte
)

// SetConsole redirects the simulated firmware console to w. Passing nil
// restores os.Stdout.
func SetConsole(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	consoleMu.Lock()
	console = w
	consoleMu.Unlock()
}

func consolePutchar(ch byte) Error {
	consoleMu.Lock()
	defer consoleMu.Unlock()

	oneByte[0] = ch
	if _, err := console.Write(oneByte[:]); err != nil {
		return Failed
	}

	return Success
}
