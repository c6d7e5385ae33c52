// Package sink provides positional file sinks for writing large binary
// payloads at controlled byte offsets. FileSink writes a single contiguous
// buffer per call; VectorizedWriter writes an ordered sequence of buffers
// with scatter-gather I/O where the platform supports it. Both retry short
// writes with a bounded zero-progress budget and share a platform handle
// layer (POSIX pwrite/pwritev, Windows overlapped WriteFile).
package sink

// maxZeroWriteRetries bounds consecutive zero-byte transfers before a write
// gives up. A positional write may legitimately transfer fewer bytes than
// requested under transient conditions; three zero-byte transfers in a row
// indicate a stalled descriptor rather than a recoverable short write.
const maxZeroWriteRetries = 3

// pwriteFunc issues exactly one OS positional write of p at off and reports
// the number of bytes transferred. A hard OS failure is returned as an
// error; a short (or zero-byte) transfer is not an error.
type pwriteFunc func(p []byte, off int64) (int, error)

// gatherFunc issues one scatter-gather write of bufs at off and reports the
// total number of bytes transferred across all buffers.
type gatherFunc func(bufs [][]byte, off int64) (int, error)

// writeFull writes all of p starting at off, retrying short writes. Each
// zero-byte transfer consumes the zero-progress budget; any positive
// transfer resets it and advances the cursor and offset. Returns true iff
// the full range was written, false when the budget is exhausted. An error
// is returned only for hard OS failures.
func writeFull(pw pwriteFunc, p []byte, off int64) (bool, error) {
	retries := 0
	for len(p) > 0 && retries < maxZeroWriteRetries {
		n, err := pw(p, off)
		if err != nil {
			return false, err
		}
		if n == 0 {
			retries++
			continue
		}
		retries = 0
		p = p[n:]
		off += int64(n)
	}
	return len(p) == 0, nil
}

// writeAt writes all of p starting at off through the handle's positional
// write primitive, with the bounded retry policy of writeFull.
func (h *fileHandle) writeAt(p []byte, off int64) (bool, error) {
	return writeFull(h.pwrite, p, off)
}
