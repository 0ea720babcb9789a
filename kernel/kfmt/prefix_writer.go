package kfmt

import "io"

// PrefixWriter wraps Sink and emits Prefix at the start of every line. A nil
// Sink sends output to the early buffer, the same place Printf writes to
// before an output sink is registered.
type PrefixWriter struct {
	Sink   io.Writer
	Prefix []byte

	midLine bool
}

// Write implements io.Writer. The returned count excludes prefix bytes.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written, lineStart int

	for i := 0; i < len(p); i++ {
		if p[i] != '\n' {
			continue
		}

		n, err := w.writeLine(p[lineStart : i+1])
		written += n
		if err != nil {
			return written, err
		}
		w.midLine = false
		lineStart = i + 1
	}

	if lineStart < len(p) {
		n, err := w.writeLine(p[lineStart:])
		written += n
		if err != nil {
			return written, err
		}
		w.midLine = true
	}

	return written, nil
}

func (w *PrefixWriter) writeLine(line []byte) (int, error) {
	if !w.midLine {
		if _, err := w.sinkWrite(w.Prefix); err != nil {
			return 0, err
		}
	}

	return w.sinkWrite(line)
}

func (w *PrefixWriter) sinkWrite(p []byte) (int, error) {
	if w.Sink == nil {
		return earlyBuffer.Write(p)
	}
	return w.Sink.Write(p)
}
