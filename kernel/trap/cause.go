package trap

import "rvos/kernel/cpu"

// Exception codes reported in scause when the interrupt bit is clear.
const (
	InstructionMisaligned = 0
	InstructionFault      = 1
	IllegalInstruction    = 2
	Breakpoint            = 3
	LoadMisaligned        = 4
	LoadFault             = 5
	StoreMisaligned       = 6
	StoreFault            = 7
	EnvCallFromU          = 8
	EnvCallFromS          = 9
	InstructionPageFault  = 12
	LoadPageFault         = 13
	StorePageFault        = 15
)

// Interrupt codes reported in scause when the interrupt bit is set.
const (
	SupervisorSoftware = 1
	SupervisorTimer    = 5
	SupervisorExternal = 9
)

// IsInterrupt reports whether scause describes an interrupt.
func IsInterrupt(scause uintptr) bool {
	return scause&cpu.CauseInterrupt != 0
}

// Describe returns a human readable name for an scause value.
func Describe(scause uintptr) string {
	code := scause & cpu.CauseCodeMask

	if IsInterrupt(scause) {
		switch code {
		case SupervisorSoftware:
			return "supervisor software interrupt"
		case SupervisorTimer:
			return "supervisor timer interrupt"
		case SupervisorExternal:
			return "supervisor external interrupt"
		}
		return "unknown interrupt"
	}

	switch code {
	case InstructionMisaligned:
		return "instruction address misaligned"
	case InstructionFault:
		return "instruction access fault"
	case IllegalInstruction:
		return "illegal instruction"
	case Breakpoint:
		return "breakpoint"
	case LoadMisaligned:
		return "load address misaligned"
	case LoadFault:
		return "load access fault"
	case StoreMisaligned:
		return "store/AMO address misaligned"
	case StoreFault:
		return "store/AMO access fault"
	case EnvCallFromU:
		return "environment call from U-mode"
	case EnvCallFromS:
		return "environment call from S-mode"
	case InstructionPageFault:
		return "instruction page fault"
	case LoadPageFault:
		return "load page fault"
	case StorePageFault:
		return "store/AMO page fault"
	}
	return "unknown exception"
}
