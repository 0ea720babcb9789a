package kernel

// Error describes a kernel error. Kernel errors are declared as package-level
// pointers to Error and compared by identity: reporting an error must never
// depend on the allocator, which may be the very thing that failed.
type Error struct {
	// The subsystem that raised the error (e.g. "pmm", "vmm").
	Module string

	// The error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
