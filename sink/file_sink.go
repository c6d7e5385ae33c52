package sink

import "sync"

// FileSink writes single contiguous buffers to a file at caller-controlled
// byte offsets. It owns the underlying OS handle for its lifetime; writes
// from multiple goroutines are serialized, since the short-write retry
// bookkeeping is not re-entrant.
type FileSink struct {
	mu sync.Mutex
	h  *fileHandle
}

// NewFileSink creates the file at path if absent and opens it for writing.
// The caller is responsible for ensuring the containing directory exists.
func NewFileSink(path string) (*FileSink, error) {
	h, err := openHandle(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{h: h}, nil
}

// Write writes data starting at offset, retrying short writes. An empty or
// nil buffer succeeds immediately with no I/O. Returns false when the
// zero-progress retry budget is exhausted before the full range is written;
// returns a *WriteError only for hard OS failures.
func (s *FileSink) Write(offset int64, data []byte) (bool, error) {
	if len(data) == 0 {
		return true, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.writeAt(data, offset)
}

// Close flushes best-effort and releases the OS handle. It never fails and
// is safe to call more than once; the sink must not be used afterwards.
func (s *FileSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h.close()
}
