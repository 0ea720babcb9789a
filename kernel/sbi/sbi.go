// Package sbi talks to the supervisor binary interface firmware (OpenSBI)
// that boots the kernel. Only the legacy console extension is used.
package sbi

import "rvos/kernel"

// Error is a status code returned by the firmware in a0.
type Error int32

// Status codes defined by the SBI specification.
const (
	Success          Error = 0
	Failed           Error = -1
	NotSupported     Error = -2
	InvalidParam     Error = -3
	Denied           Error = -4
	InvalidAddress   Error = -5
	AlreadyAvailable Error = -6
	AlreadyStarted   Error = -7
	AlreadyStopped   Error = -8
)

// ExtConsolePutchar is the extension id of the legacy console_putchar call.
const ExtConsolePutchar = 0x01

var errConsoleWrite = &kernel.Error{Module: "sbi", Message: "console_putchar failed"}

// String returns the firmware name of the status code.
func (e Error) String() string {
	switch e {
	case Success:
		return "SUCCESS"
	case Failed:
		return "FAILED"
	case NotSupported:
		return "NOT_SUPPORTED"
	case InvalidParam:
		return "INVALID_PARAM"
	case Denied:
		return "DENIED"
	case InvalidAddress:
		return "INVALID_ADDRESS"
	case AlreadyAvailable:
		return "ALREADY_AVAILABLE"
	case AlreadyStarted:
		return "ALREADY_STARTED"
	case AlreadyStopped:
		return "ALREADY_STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Putchar writes a single byte to the firmware console.
func Putchar(ch byte) Error {
	return putcharFn(ch)
}

// Console is an io.Writer that sends its output to the firmware console one
// byte at a time. It is meant to be registered with kfmt.SetOutputSink.
type Console struct{}

// Write implements io.Writer. Writing stops at the first byte the firmware
// refuses.
func (Console) Write(p []byte) (int, error) {
	for i, b := range p {
		if putcharFn(b) != Success {
			return i, errConsoleWrite
		}
	}

	return len(p), nil
}
