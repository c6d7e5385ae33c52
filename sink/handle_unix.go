//go:build unix

package sink

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// fileHandle owns one POSIX file descriptor for its lifetime. Re-opening is
// not supported; after close the handle must not be used again.
type fileHandle struct {
	fd   int
	path string
}

// openHandle creates path if absent and opens it write-only, with
// owner-read-write, group/other-read permissions.
func openHandle(path string) (*fileHandle, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_CREAT, 0644)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &fileHandle{fd: fd, path: path}, nil
}

// pwrite issues a single positional write. Short writes are reported
// through the byte count, not as errors.
func (h *fileHandle) pwrite(p []byte, off int64) (int, error) {
	n, err := unix.Pwrite(h.fd, p, off)
	if err != nil {
		return 0, &WriteError{Path: h.path, Offset: off, Err: err}
	}
	return n, nil
}

// flush durably flushes buffered writes to storage. Failures are logged,
// never raised; a flush skipped on a released handle reports success.
func (h *fileHandle) flush() bool {
	if h == nil || h.fd < 0 {
		return true
	}
	if err := unix.Fsync(h.fd); err != nil {
		log.Warn().Err(err).Str("path", h.path).Msg("failed to flush file")
		return false
	}
	return true
}

// close flushes best-effort and releases the descriptor. Safe to call on a
// nil or already-closed handle.
func (h *fileHandle) close() {
	if h == nil || h.fd < 0 {
		return
	}
	h.flush()
	if err := unix.Close(h.fd); err != nil {
		log.Warn().Err(err).Str("path", h.path).Msg("failed to close file")
	}
	h.fd = -1
}
