//go:build linux

package watcher

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/listenupapp/watchdog/internal/errors"
)

const backendName = "inotify"

// inotifyQueue implements Queue with one Linux inotify instance.
type inotifyQueue struct {
	logger *slog.Logger
	file   *os.File
	path   string
	fd     int
	wd     int
	mu     sync.Mutex
}

// openQueue initializes inotify.
// The descriptor is non-blocking and wrapped in an *os.File so that Read parks
// in the runtime poller and is woken when Close runs.
func openQueue(logger *slog.Logger) (Queue, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, errors.Wrap(os.NewSyscallError("inotify_init1", err), errors.CodeInitFailed, "failed to initialize inotify instance")
	}

	return &inotifyQueue{
		logger: logger,
		file:   os.NewFile(uintptr(fd), "inotify"),
		fd:     fd,
		wd:     -1,
	}, nil
}

// AddWatch adds the inotify watch for path.
func (q *inotifyQueue) AddWatch(path string, mask Kind) (WatchID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.wd >= 0 {
		return -1, errors.Newf(errors.CodeAddFailed, "queue already watches %q", q.path)
	}

	wd, err := unix.InotifyAddWatch(q.fd, path, uint32(mask))
	if err != nil {
		return -1, errors.Wrapf(os.NewSyscallError("inotify_add_watch", err), errors.CodeAddFailed, "failed to add watch for %q", path)
	}

	q.wd = wd
	q.path = path
	q.logger.Debug("added watch", "path", path, "wd", wd, "mask", mask)

	return WatchID(wd), nil //nolint:gosec // G115: wd is always a small non-negative int from inotify
}

// Read reads packed inotify records into buf.
func (q *inotifyQueue) Read(buf []byte) (int, error) {
	n, err := q.file.Read(buf)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeReadFailed, "failed to read from inotify instance")
	}
	if n == 0 {
		return 0, errors.Wrap(io.ErrUnexpectedEOF, errors.CodeReadFailed, "failed to read from inotify instance")
	}
	return n, nil
}

// Close removes the watch and closes the inotify descriptor.
func (q *inotifyQueue) Close() error {
	q.mu.Lock()
	wd := q.wd
	q.wd = -1
	q.mu.Unlock()

	var errs []error
	if wd >= 0 {
		// Removing the watch queues IN_IGNORED, which wakes a blocked reader.
		//nolint:gosec // G115: wd is always a small non-negative int from inotify
		if _, err := unix.InotifyRmWatch(q.fd, uint32(wd)); err != nil {
			errs = append(errs, os.NewSyscallError("inotify_rm_watch", err))
		}
	}
	if err := q.file.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Wrap(errors.Join(errs...), errors.CodeCloseFailed, "failed to close inotify instance")
	}
	q.logger.Debug("closed inotify instance", "path", q.path, "wd", wd)
	return nil
}
