package proc

import (
	"encoding/binary"
	"unsafe"
)

const (
	// StackSize is the size of the kernel stack owned by each process.
	StackSize = 8192

	// stackAlign is the stack pointer alignment required by the RISC-V
	// calling convention.
	stackAlign = 16

	// savedRegs is the number of words switch_context saves: ra followed
	// by s0 to s11.
	savedRegs = 13

	// frameSize is the size in bytes of a saved context frame.
	frameSize = savedRegs * 4
)

// A saved frame must fit in a stack together with the alignment slack.
var _ [StackSize - frameSize - stackAlign]struct{}

// Stack is the kernel stack of a process.
type Stack [StackSize]byte

// SavedFrame is the register state stored by switch_context at the saved
// stack pointer of a suspended process.
type SavedFrame struct {
	RA uint32
	S  [12]uint32
}

// Base returns the lowest address of the stack.
func (s *Stack) Base() uintptr {
	return uintptr(unsafe.Pointer(&s[0]))
}

// Top returns the initial stack pointer, the end of the stack rounded down
// to stackAlign.
func (s *Stack) Top() uintptr {
	return (s.Base() + StackSize) &^ (stackAlign - 1)
}

// Contains reports whether sp points inside the stack.
func (s *Stack) Contains(sp uintptr) bool {
	return sp >= s.Base() && sp <= s.Base()+StackSize
}

// pushInitialFrame writes a frame at the top of the stack that makes the
// first switch to it return into entry with all callee-saved registers
// cleared. It returns the stack pointer to save.
func (s *Stack) pushInitialFrame(entry uintptr) uintptr {
	sp := s.Top() - frameSize
	frame := s[sp-s.Base() : sp-s.Base()+frameSize]

	binary.LittleEndian.PutUint32(frame, uint32(entry))
	for i := 4; i < frameSize; i++ {
		frame[i] = 0
	}

	return sp
}

// FrameAt decodes the saved frame at sp. It returns false if a frame at sp
// would not fit in the stack.
func (s *Stack) FrameAt(sp uintptr) (SavedFrame, bool) {
	var frame SavedFrame
	if sp < s.Base() || sp+frameSize > s.Base()+StackSize {
		return frame, false
	}

	raw := s[sp-s.Base() : sp-s.Base()+frameSize]
	frame.RA = binary.LittleEndian.Uint32(raw)
	for i := range frame.S {
		frame.S[i] = binary.LittleEndian.Uint32(raw[4+4*i:])
	}

	return frame, true
}
