package kernel

// Memset sets every byte of target to value. Instead of a byte loop it
// seeds the first byte and then doubles the initialized prefix with
// log2(len(target)) copy calls; page-sized targets are the common case.
func Memset(target []byte, value byte) {
	if len(target) == 0 {
		return
	}

	target[0] = value
	for filled := 1; filled < len(target); filled *= 2 {
		copy(target[filled:], target[:filled])
	}
}
