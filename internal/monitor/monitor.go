// Package monitor runs the watch loop: block on the event queue, decode what
// arrived, classify each record and forward the result to the sink.
package monitor

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/listenupapp/watchdog/internal/errors"
	"github.com/listenupapp/watchdog/internal/notify"
	"github.com/listenupapp/watchdog/internal/watcher"
)

// waitingLine is printed before every blocking read. It is a diagnostic, not
// a stable interface.
const waitingLine = "Waiting for inotify events..."

// Reader is the part of watcher.Queue the loop uses.
type Reader interface {
	Read(buf []byte) (int, error)
}

// Status reports whether shutdown has begun.
type Status interface {
	ShuttingDown() bool
}

// Options configures the notifications the loop produces.
type Options struct {
	// Title is the display name of the watched path.
	Title      string
	Icon       string
	Urgency    notify.Urgency
	BufferSize int
}

// Monitor is the watch loop for one queue.
type Monitor struct {
	logger *slog.Logger
	queue  Reader
	sink   notify.Sink
	status Status
	stdout io.Writer
	opts   Options
}

// New creates a monitor. status may be nil when nothing else can shut the
// queue down.
func New(logger *slog.Logger, queue Reader, sink notify.Sink, status Status, stdout io.Writer, opts Options) *Monitor {
	if stdout == nil {
		stdout = io.Discard
	}
	if opts.Icon == "" {
		opts.Icon = notify.DefaultIcon
	}
	return &Monitor{
		logger: logger,
		queue:  queue,
		sink:   sink,
		status: status,
		stdout: stdout,
		opts:   opts,
	}
}

// Run reads and dispatches events until ctx is cancelled or a read fails.
// A read error seen after shutdown has begun ends the loop quietly; any
// other read error is returned as READ_FAILED and is not retried.
func (m *Monitor) Run(ctx context.Context) error {
	buf := watcher.NewBuffer(watcher.Options{BufferSize: m.opts.BufferSize})

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprintln(m.stdout, waitingLine)

		n, err := m.queue.Read(buf)
		if err != nil {
			if ctx.Err() != nil || (m.status != nil && m.status.ShuttingDown()) {
				m.logger.Debug("read ended by shutdown", "error", err)
				return nil
			}
			if errors.Is(err, errors.ErrReadFailed) {
				return err
			}
			return errors.Wrap(err, errors.CodeReadFailed, "failed to read from inotify instance")
		}

		m.dispatch(ctx, buf, n)
	}
}

// dispatch notifies for every classified record in buf[:n].
func (m *Monitor) dispatch(ctx context.Context, buf []byte, n int) {
	for rec, err := range watcher.Decode(buf, n) {
		if err != nil {
			m.logger.Warn("dropping corrupt event data", "error", err, "valid_bytes", n)
			return
		}

		msg, ok := watcher.Classify(rec)
		if !ok {
			m.logger.Debug("skipping event", "kind", rec.Kind.String(), "wd", rec.WatchID)
			continue
		}

		req := notify.Request{
			Title:   m.opts.Title,
			Message: msg,
			Icon:    m.opts.Icon,
			Urgency: m.opts.Urgency,
		}
		if err := m.sink.Notify(ctx, req); err != nil {
			m.logger.Warn("failed to send notification",
				"error", err,
				"kind", rec.Kind.String(),
				"message", msg,
			)
			continue
		}

		m.logger.Debug("event dispatched", "kind", rec.Kind.String(), "name", rec.Name, "message", msg)
	}
}
