//go:build !tinygo.riscv32

package proc

import (
	"sync"

	"rvos/kernel"
	"rvos/kernel/kfmt"
)

var (
	errUnknownEntry    = &kernel.Error{Module: "proc", Message: "fresh context returns to an unregistered entry point"}
	errContextReturned = &kernel.Error{Module: "proc", Message: "process entry point returned"}

	entryMu   sync.Mutex
	entries   = map[uintptr]func(){}
	nextEntry = uintptr(0x1000)
)

// EntryFor registers fn and returns the address to pass to Table.Create.
// The address only has meaning to CoroutineSwitcher.
func EntryFor(fn func()) uintptr {
	entryMu.Lock()
	defer entryMu.Unlock()

	addr := nextEntry
	nextEntry += 4
	entries[addr] = fn
	return addr
}

func entryFunc(addr uintptr) func() {
	entryMu.Lock()
	defer entryMu.Unlock()
	return entries[addr]
}

// CoroutineSwitcher implements Switcher on the host by running every
// context on its own goroutine. Exactly one of them runs at a time; all
// others are parked on their wake channel.
//
// A context that has never been switched to is started by decoding the
// initial frame saved for it and running the function that was registered
// for its return address with EntryFor. Frames are decoded by the resolver
// installed with BindFrames; a Scheduler installs one that looks the cell
// up in its process table.
type CoroutineSwitcher struct {
	mu     sync.Mutex
	wake   map[*uintptr]chan struct{}
	frames FrameResolver
}

// NewCoroutineSwitcher returns a switcher with no known contexts.
func NewCoroutineSwitcher() *CoroutineSwitcher {
	return &CoroutineSwitcher{wake: make(map[*uintptr]chan struct{})}
}

// DefaultSwitcher returns a new CoroutineSwitcher.
func DefaultSwitcher() Switcher {
	return NewCoroutineSwitcher()
}

// BindFrames sets the resolver used to decode the initial frame of a
// context that has not run yet.
func (cs *CoroutineSwitcher) BindFrames(resolve FrameResolver) {
	cs.mu.Lock()
	cs.frames = resolve
	cs.mu.Unlock()
}

// Switch parks the calling goroutine as prev and resumes or starts next.
func (cs *CoroutineSwitcher) Switch(prev, next *uintptr) {
	cs.mu.Lock()
	prevCh, ok := cs.wake[prev]
	if !ok {
		prevCh = make(chan struct{})
		cs.wake[prev] = prevCh
	}

	nextCh, started := cs.wake[next]
	if !started {
		nextCh = make(chan struct{})
		cs.wake[next] = nextCh
	}
	resolve := cs.frames
	cs.mu.Unlock()

	if started {
		nextCh <- struct{}{}
	} else if !start(resolve, next) {
		cs.mu.Lock()
		delete(cs.wake, next)
		cs.mu.Unlock()
		return
	}

	<-prevCh
}

// start runs the entry point recorded in the initial frame of cell on a
// new goroutine.
func start(resolve FrameResolver, cell *uintptr) bool {
	var fn func()
	if resolve != nil {
		if frame, ok := resolve(cell); ok {
			fn = entryFunc(uintptr(frame.RA))
		}
	}

	if fn == nil {
		kfmt.Panic(errUnknownEntry)
		return false
	}

	go func() {
		fn()
		kfmt.Panic(errContextReturned)
	}()
	return true
}
