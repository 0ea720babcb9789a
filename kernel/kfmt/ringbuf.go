package kfmt

import "io"

// ringBufferSize must be a power of 2.
const ringBufferSize = 2048

// ringBuffer keeps the most recent ringBufferSize bytes written to it.
// Older bytes are overwritten once the buffer fills up.
type ringBuffer struct {
	buffer     [ringBufferSize]byte
	rPos, wPos int
}

func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.buffer[rb.wPos] = b
		rb.wPos = (rb.wPos + 1) & (ringBufferSize - 1)
		if rb.wPos == rb.rPos {
			// Drop the oldest byte.
			rb.rPos = (rb.rPos + 1) & (ringBufferSize - 1)
		}
	}

	return len(p), nil
}

// Read drains up to len(p) bytes. It returns io.EOF once the buffer is
// empty.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.rPos == rb.wPos {
		return 0, io.EOF
	}

	// Read the contiguous run that starts at rPos.
	end := rb.wPos
	if rb.rPos > rb.wPos {
		end = ringBufferSize
	}

	n := copy(p, rb.buffer[rb.rPos:end])
	rb.rPos = (rb.rPos + n) & (ringBufferSize - 1)
	return n, nil
}
