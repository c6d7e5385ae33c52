//go:build !linux

package sink

// writeVectors simulates a gather write by issuing one positional write per
// buffer at its cumulative offset. A short write stops the pass; the caller
// recomputes the remaining vectors from the byte count, same as for a
// partial pwritev.
func (h *fileHandle) writeVectors(bufs [][]byte, off int64) (int, error) {
	total := 0
	for _, b := range bufs {
		n, err := h.pwrite(b, off)
		total += n
		if err != nil {
			return total, err
		}
		if n < len(b) {
			return total, nil
		}
		off += int64(n)
	}
	return total, nil
}

// maxWriteVectors reports the largest buffer count a single gather write
// may carry.
func maxWriteVectors() int {
	return defaultMaxVectors
}
