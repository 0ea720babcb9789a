// Package sync provides the kernel's spinlock.
package sync

import "sync/atomic"

// spinsBeforeYield is the number of failed acquisition attempts after which
// Acquire calls yieldFn.
const spinsBeforeYield = 64

// yieldFn is invoked while waiting for a contended lock. The kernel runs on
// a single hart with cooperative scheduling so it stays nil there; tests
// install runtime.Gosched.
var yieldFn func()

// Spinlock is a busy-waiting mutual exclusion lock. The zero value is an
// unlocked lock.
type Spinlock struct {
	state uint32
}

// Acquire spins until the lock is obtained. Acquiring a lock that the
// caller already holds never returns.
func (l *Spinlock) Acquire() {
	for spins := 1; !l.TryToAcquire(); spins++ {
		if spins%spinsBeforeYield == 0 && yieldFn != nil {
			yieldFn()
		}
	}
}

// TryToAcquire takes the lock if it is free and reports whether it did.
func (l *Spinlock) TryToAcquire() bool {
	return atomic.CompareAndSwapUint32(&l.state, 0, 1)
}

// Release frees the lock. Releasing a free lock has no effect.
func (l *Spinlock) Release() {
	atomic.StoreUint32(&l.state, 0)
}
