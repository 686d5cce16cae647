//go:build !linux

package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/listenupapp/watchdog/internal/errors"
)

const backendName = "fsnotify"

// fallbackWatchID is the id reported for the single fsnotify watch.
const fallbackWatchID WatchID = 1

// fallbackQueue implements Queue on top of fsnotify. Each fsnotify event is
// translated to a Kind and written into the caller's buffer as a packed
// record, so the rest of the program sees the same stream as on Linux.
type fallbackQueue struct {
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	path    string
	mu      sync.Mutex
}

// openQueue creates the fsnotify watcher.
func openQueue(logger *slog.Logger) (Queue, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInitFailed, "failed to create fsnotify watcher")
	}

	return &fallbackQueue{
		logger:  logger,
		watcher: w,
	}, nil
}

// AddWatch adds path to the fsnotify watcher. fsnotify reports a fixed set of
// operations, so mask only documents intent here.
func (q *fallbackQueue) AddWatch(path string, mask Kind) (WatchID, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.path != "" {
		return -1, errors.Newf(errors.CodeAddFailed, "queue already watches %q", q.path)
	}

	if _, err := os.Stat(path); err != nil {
		return -1, errors.Wrapf(err, errors.CodeAddFailed, "failed to add watch for %q", path)
	}
	if err := q.watcher.Add(path); err != nil {
		return -1, errors.Wrapf(err, errors.CodeAddFailed, "failed to add watch for %q", path)
	}

	q.path = filepath.Clean(path)
	q.logger.Debug("added watch", "path", path, "mask", mask)

	return fallbackWatchID, nil
}

// Read waits for the next fsnotify event and encodes it into buf.
func (q *fallbackQueue) Read(buf []byte) (int, error) {
	for {
		select {
		case event, ok := <-q.watcher.Events:
			if !ok {
				return 0, errors.Wrap(os.ErrClosed, errors.CodeReadFailed, "failed to read fsnotify events")
			}

			rec, keep := q.translate(event)
			if !keep {
				continue
			}
			if rec.Size() > len(buf) {
				return 0, errors.Newf(errors.CodeReadFailed, "buffer of %d bytes too small for event %q", len(buf), event.Name)
			}
			return len(AppendRecord(buf[:0], rec)), nil

		case err, ok := <-q.watcher.Errors:
			if !ok {
				return 0, errors.Wrap(os.ErrClosed, errors.CodeReadFailed, "failed to read fsnotify events")
			}
			return 0, errors.Wrap(err, errors.CodeReadFailed, "fsnotify reported an error")
		}
	}
}

// translate maps an fsnotify event to a record.
func (q *fallbackQueue) translate(event fsnotify.Event) (Record, bool) {
	var kind Kind
	if event.Op.Has(fsnotify.Create) {
		kind |= KindCreate
	}
	if event.Op.Has(fsnotify.Write) {
		kind |= KindModify
	}
	if event.Op.Has(fsnotify.Remove) {
		kind |= KindDelete
	}
	if event.Op.Has(fsnotify.Rename) {
		kind |= KindMoveSelf
	}
	if event.Op.Has(fsnotify.Chmod) {
		kind |= KindAttrib
	}
	if kind == 0 {
		return Record{}, false
	}

	q.mu.Lock()
	root := q.path
	q.mu.Unlock()

	name := ""
	if rel, err := filepath.Rel(root, event.Name); err == nil && rel != "." {
		name = rel
	}

	rec := Record{WatchID: fallbackWatchID, Kind: kind, Name: name}
	rec.NameLen = paddedNameLen(name)
	return rec, true
}

// Close stops the fsnotify watcher.
func (q *fallbackQueue) Close() error {
	if err := q.watcher.Close(); err != nil {
		return errors.Wrap(err, errors.CodeCloseFailed, "failed to close fsnotify watcher")
	}
	q.logger.Debug("closed fsnotify watcher", "path", q.path)
	return nil
}
