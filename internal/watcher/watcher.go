// Package watcher owns the kernel event channel: opening it, registering the
// single watch, and decoding the packed record stream it produces.
package watcher

import (
	"log/slog"
	"runtime"
)

// Open creates the event queue for this platform.
// Linux reads inotify directly; other platforms translate fsnotify events
// into the same record stream so decoding is shared.
func Open(logger *slog.Logger) (Queue, error) {
	q, err := openQueue(logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("event queue opened", "backend", backendName, "platform", runtime.GOOS)
	return q, nil
}
