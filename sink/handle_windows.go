//go:build windows

package sink

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows"
)

// fileHandle owns one Windows file handle for its lifetime. The file is
// opened for overlapped I/O, but every write blocks on completion, so usage
// is synchronous per call.
type fileHandle struct {
	h    windows.Handle
	path string
}

// openHandle creates path if absent and opens it for exclusive write access.
func openHandle(path string) (*fileHandle, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	h, err := windows.CreateFile(
		name,
		windows.GENERIC_WRITE,
		0, // no sharing
		nil,
		windows.OPEN_ALWAYS,
		windows.FILE_FLAG_OVERLAPPED,
		0,
	)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &fileHandle{h: h, path: path}, nil
}

// pwrite issues a single positional write via an overlapped WriteFile and
// blocks until completion. Short writes are reported through the byte
// count, not as errors.
func (h *fileHandle) pwrite(p []byte, off int64) (int, error) {
	ev, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return 0, &WriteError{Path: h.path, Offset: off, Err: err}
	}
	defer windows.CloseHandle(ev)

	ov := windows.Overlapped{
		Offset:     uint32(off),
		OffsetHigh: uint32(off >> 32),
		HEvent:     ev,
	}
	err = windows.WriteFile(h.h, p, nil, &ov)
	if err != nil && err != windows.ERROR_IO_PENDING {
		return 0, &WriteError{Path: h.path, Offset: off, Err: err}
	}

	var written uint32
	if err := windows.GetOverlappedResult(h.h, &ov, &written, true); err != nil {
		return 0, &WriteError{Path: h.path, Offset: off, Err: err}
	}
	return int(written), nil
}

// flush durably flushes buffered writes to storage. Failures are logged,
// never raised; a flush skipped on a released handle reports success.
func (h *fileHandle) flush() bool {
	if h == nil || h.h == windows.InvalidHandle {
		return true
	}
	if err := windows.FlushFileBuffers(h.h); err != nil {
		log.Warn().Err(err).Str("path", h.path).Msg("failed to flush file")
		return false
	}
	return true
}

// close flushes best-effort and releases the handle. Safe to call on a nil
// or already-closed handle.
func (h *fileHandle) close() {
	if h == nil || h.h == windows.InvalidHandle {
		return
	}
	h.flush()
	if err := windows.CloseHandle(h.h); err != nil {
		log.Warn().Err(err).Str("path", h.path).Msg("failed to close file")
	}
	h.h = windows.InvalidHandle
}
