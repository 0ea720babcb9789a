//go:build tinygo.riscv32

package proc

// switch_context is implemented in arch/riscv32/entry.S.
//
//export switch_context
func switch_context(prev, next *uintptr)

type contextSwitcher struct{}

func (contextSwitcher) Switch(prev, next *uintptr) {
	switch_context(prev, next)
}

// DefaultSwitcher returns the switcher backed by switch_context.
func DefaultSwitcher() Switcher {
	return contextSwitcher{}
}
