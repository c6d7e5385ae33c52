package sink

import "sync"

// defaultMaxVectors is the well-known POSIX/Windows ceiling on the number
// of buffers one gather call may carry (IOV_MAX on Linux and macOS).
const defaultMaxVectors = 1024

// VectorizedWriter writes an ordered sequence of buffers to a file with
// scatter-gather I/O where the platform supports it. Concatenating the
// buffers in order, starting at the given offset, yields exactly the bytes
// a FileSink would produce from a single consolidated buffer.
type VectorizedWriter struct {
	mu      sync.Mutex
	h       *fileHandle
	writev  gatherFunc
	maxVecs int
}

// NewVectorizedWriter creates the file at path if absent and opens it for
// writing. The caller is responsible for ensuring the containing directory
// exists.
func NewVectorizedWriter(path string) (*VectorizedWriter, error) {
	h, err := openHandle(path)
	if err != nil {
		return nil, err
	}
	return &VectorizedWriter{
		h:       h,
		writev:  h.writeVectors,
		maxVecs: maxWriteVectors(),
	}, nil
}

// WriteVectors writes buffers as if concatenated in order, starting at
// offset. Buffers are grouped so no single gather call exceeds the platform
// vector-count ceiling. A partial gather write is resumed by dropping the
// fully-written buffers, trimming the written prefix of the first
// partially-written buffer, and retrying at the advanced offset. Returns
// false when three consecutive gather calls make no progress; bytes already
// written stay on disk. Returns a *WriteError only for hard OS failures.
func (w *VectorizedWriter) WriteVectors(buffers [][]byte, offset int64) (bool, error) {
	remaining := make([][]byte, 0, len(buffers))
	for _, b := range buffers {
		if len(b) > 0 {
			remaining = append(remaining, b)
		}
	}
	if len(remaining) == 0 {
		return true, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	retries := 0
	for len(remaining) > 0 && retries < maxZeroWriteRetries {
		group := remaining
		if len(group) > w.maxVecs {
			group = group[:w.maxVecs]
		}
		n, err := w.writev(group, offset)
		if err != nil {
			return false, err
		}
		if n == 0 {
			retries++
			continue
		}
		retries = 0
		offset += int64(n)
		remaining = advanceVectors(remaining, n)
	}
	return len(remaining) == 0, nil
}

// advanceVectors drops the buffers fully covered by n written bytes and
// trims the written prefix of the first partially-written buffer. Only the
// local slice headers are re-sliced; the callers' bytes are never touched.
func advanceVectors(bufs [][]byte, n int) [][]byte {
	for len(bufs) > 0 && n >= len(bufs[0]) {
		n -= len(bufs[0])
		bufs = bufs[1:]
	}
	if len(bufs) > 0 && n > 0 {
		bufs[0] = bufs[0][n:]
	}
	return bufs
}

// Close flushes best-effort and releases the OS handle. It never fails and
// is safe to call more than once; the writer must not be used afterwards.
func (w *VectorizedWriter) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.h.close()
}
