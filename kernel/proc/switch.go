package proc

// Switcher transfers control between two saved contexts. Switch saves the
// return address and callee-saved registers of the running context on its
// stack, stores its stack pointer in *prev, loads the stack pointer from
// *next, restores the registers saved there and returns into that context.
//
// Switch returns in the previous context only once some later Switch names
// prev as its next context.
type Switcher interface {
	Switch(prev, next *uintptr)
}

// FrameResolver returns the frame saved at the stack pointer stored in
// cell, or false if cell does not belong to a known context.
type FrameResolver func(cell *uintptr) (SavedFrame, bool)

// frameBinder is implemented by switchers that need to decode the initial
// frame of a context before its first run.
type frameBinder interface {
	BindFrames(resolve FrameResolver)
}
