// Package kfmt implements the kernel's formatted output. Nothing in this
// package allocates so it can be used from the trap handler and before the
// TinyGo heap is usable.
package kfmt

import (
	"io"
	"unsafe"
)

// numBufSize bounds the width of a formatted integer.
const numBufSize = 32

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	numBuf  [numBufSize + 1]byte
	charBuf [1]byte

	// earlyBuffer collects output until a sink is registered.
	earlyBuffer ringBuffer

	// outputSink receives Printf output. When nil, output goes to
	// earlyBuffer.
	outputSink io.Writer
)

// SetOutputSink makes w the target of Printf and flushes anything that was
// buffered before a sink existed.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyBuffer)
	}
}

// GetOutputSink returns the writer registered with SetOutputSink.
func GetOutputSink() io.Writer {
	return outputSink
}

// Printf formats according to format and writes to the registered output
// sink. It understands a subset of the fmt verbs:
//
//	%s  string or []byte
//	%d  base 10 integer
//	%o  base 8 integer
//	%x  base 16 integer, lower-case
//	%t  bool
//	%c  single byte (any integer type)
//	%%  literal percent sign
//
// A decimal width may precede the verb. Strings and base 10 integers are
// padded with spaces, base 8 and 16 integers with zeroes.
//
// Arguments are never inspected for fmt.Stringer and pointers cannot be
// printed; either would pull in reflect and allocate.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf works like Printf but writes to w. A nil w selects the early
// buffer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		argIndex int
		width    int
		i        int
	)

	for i < len(format) {
		ch := format[i]
		i++

		if ch != '%' {
			writeByte(w, ch)
			continue
		}

		width = 0
		for ; i < len(format) && format[i] >= '0' && format[i] <= '9'; i++ {
			width = width*10 + int(format[i]-'0')
		}

		if i == len(format) {
			doWrite(w, errNoVerb)
			break
		}

		verb := format[i]
		i++

		switch verb {
		case '%':
			writeByte(w, '%')
			continue
		case 'd', 'x', 'o', 's', 't', 'c':
		default:
			doWrite(w, errNoVerb)
			continue
		}

		if argIndex >= len(args) {
			doWrite(w, errMissingArg)
			continue
		}

		arg := args[argIndex]
		argIndex++

		switch verb {
		case 'd':
			fmtInt(w, arg, 10, width)
		case 'x':
			fmtInt(w, arg, 16, width)
		case 'o':
			fmtInt(w, arg, 8, width)
		case 's':
			fmtString(w, arg, width)
		case 't':
			fmtBool(w, arg)
		case 'c':
			fmtChar(w, arg)
		}
	}

	for ; argIndex < len(args); argIndex++ {
		doWrite(w, errExtraArg)
	}
}

func fmtBool(w io.Writer, v interface{}) {
	b, ok := v.(bool)
	switch {
	case !ok:
		doWrite(w, errWrongArgType)
	case b:
		doWrite(w, trueValue)
	default:
		doWrite(w, falseValue)
	}
}

func fmtChar(w io.Writer, v interface{}) {
	val, _, ok := intArg(v)
	if !ok {
		doWrite(w, errWrongArgType)
		return
	}

	writeByte(w, byte(val))
}

func fmtString(w io.Writer, v interface{}, width int) {
	switch s := v.(type) {
	case string:
		pad(w, ' ', width-len(s))
		// Slicing a string into []byte allocates.
		for i := 0; i < len(s); i++ {
			writeByte(w, s[i])
		}
	case []byte:
		pad(w, ' ', width-len(s))
		doWrite(w, s)
	default:
		doWrite(w, errWrongArgType)
	}
}

func pad(w io.Writer, ch byte, count int) {
	for ; count > 0; count-- {
		writeByte(w, ch)
	}
}

// intArg widens any built-in integer type to its magnitude and sign.
func intArg(v interface{}) (mag uint64, negative, ok bool) {
	var sval int64

	switch t := v.(type) {
	case uint8:
		return uint64(t), false, true
	case uint16:
		return uint64(t), false, true
	case uint32:
		return uint64(t), false, true
	case uint64:
		return t, false, true
	case uint:
		return uint64(t), false, true
	case uintptr:
		return uint64(t), false, true
	case int8:
		sval = int64(t)
	case int16:
		sval = int64(t)
	case int32:
		sval = int64(t)
	case int64:
		sval = t
	case int:
		sval = int64(t)
	default:
		return 0, false, false
	}

	if sval < 0 {
		return uint64(-sval), true, true
	}
	return uint64(sval), false, true
}

// fmtInt renders v in base 8, 10 or 16. Digits are produced least
// significant first into numBuf and written out reversed.
func fmtInt(w io.Writer, v interface{}, base uint64, width int) {
	mag, negative, ok := intArg(v)
	if !ok {
		doWrite(w, errWrongArgType)
		return
	}

	if width >= numBufSize {
		width = numBufSize - 1
	}

	padCh := byte('0')
	if base == 10 {
		padCh = ' '
	}

	n := 0
	for {
		digit := mag % base
		if digit < 10 {
			numBuf[n] = '0' + byte(digit)
		} else {
			numBuf[n] = 'a' + byte(digit-10)
		}
		n++

		mag /= base
		if mag == 0 || n == numBufSize {
			break
		}
	}

	for ; n < width; n++ {
		numBuf[n] = padCh
	}

	// The sign replaces the leftmost blank when space padded; otherwise
	// it widens the number.
	if negative {
		signAt := n
		for signAt > 0 && numBuf[signAt-1] == ' ' {
			signAt--
		}
		if signAt == n {
			n++
		}
		numBuf[signAt] = '-'
	}

	for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
		numBuf[l], numBuf[r] = numBuf[r], numBuf[l]
	}

	doWrite(w, numBuf[:n])
}

func writeByte(w io.Writer, b byte) {
	charBuf[0] = b
	doWrite(w, charBuf[:])
}

// doWrite hides p from escape analysis. Passing p straight to the
// io.Writer interface makes the compiler move every Printf argument to the
// heap.
func doWrite(w io.Writer, p []byte) {
	writeTo(w, noEscape(unsafe.Pointer(&p)))
}

func writeTo(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w == nil {
		earlyBuffer.Write(p)
		return
	}
	w.Write(p)
}

// noEscape is runtime/stubs.go's noescape. The uintptr round trip would
// trip the -race pointer checks, so they are disabled here.
//
//go:nosplit
//go:nocheckptr
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
