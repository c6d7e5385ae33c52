//go:build linux

package sink

import (
	"github.com/tklauser/go-sysconf"
	"golang.org/x/sys/unix"
)

// writeVectors issues one gather write of bufs at off via pwritev. The
// kernel may transfer fewer bytes than the combined buffer length; partial
// completion is reported through the byte count, not as an error.
func (h *fileHandle) writeVectors(bufs [][]byte, off int64) (int, error) {
	n, err := unix.Pwritev(h.fd, bufs, off)
	if err != nil {
		return 0, &WriteError{Path: h.path, Offset: off, Err: err}
	}
	return n, nil
}

// maxWriteVectors reports the largest buffer count a single gather write
// may carry, per sysconf(_SC_UIO_MAXIOV).
func maxWriteVectors() int {
	if v, err := sysconf.Sysconf(sysconf.SC_UIO_MAXIOV); err == nil && v > 0 {
		return int(v)
	}
	return defaultMaxVectors
}
