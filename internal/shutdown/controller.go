// Package shutdown runs the single close-and-exit sequence for the watch.
//
// Signals are only received on a channel; the teardown itself runs on an
// ordinary goroutine. Whatever triggers it first (a signal or a fatal read
// error) wins, and every later trigger waits for the winner and does nothing.
package shutdown

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/listenupapp/watchdog/internal/notify"
)

// Controller owns the watch handle and the notification lifecycle once they
// exist, and tears both down exactly once.
type Controller struct {
	logger    *slog.Logger
	handle    atomic.Pointer[io.Closer]
	lifecycle notify.Lifecycle
	cancel    context.CancelFunc
	exit      func(int)
	done      chan struct{}
	started   atomic.Bool
}

// New creates a controller. cancel stops the main loop's context; exit ends
// the process and is os.Exit outside tests.
func New(logger *slog.Logger, lifecycle notify.Lifecycle, cancel context.CancelFunc, exit func(int)) *Controller {
	if exit == nil {
		exit = os.Exit
	}
	return &Controller{
		logger:    logger,
		lifecycle: lifecycle,
		cancel:    cancel,
		exit:      exit,
		done:      make(chan struct{}),
	}
}

// Attach hands the watch handle to the controller.
func (c *Controller) Attach(handle io.Closer) {
	c.handle.Store(&handle)
}

// Watch terminates with status 0 on the first of sigs. Later signals are
// received and dropped.
func (c *Controller) Watch(ctx context.Context, sigs ...os.Signal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		select {
		case sig := <-ch:
			c.logger.Info("Signal received closing inotify instance...", "signal", sig.String())
			c.Terminate(0)
		case <-ctx.Done():
			signal.Stop(ch)
		}
	}()
}

// ShuttingDown reports whether termination has started.
func (c *Controller) ShuttingDown() bool {
	return c.started.Load()
}

// Done is closed once the termination sequence has finished.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Terminate closes the watch handle, releases the notification subsystem
// and exits with status. Only the first caller runs the sequence and gets
// true; concurrent callers block until it has finished and get false.
func (c *Controller) Terminate(status int) bool {
	if !c.started.CompareAndSwap(false, true) {
		<-c.done
		return false
	}
	defer close(c.done)

	if c.cancel != nil {
		c.cancel()
	}

	if h := c.handle.Swap(nil); h != nil {
		if err := (*h).Close(); err != nil {
			c.logger.Error("Error closing inotify instance", "error", err)
		}
	}

	if c.lifecycle != nil {
		if err := c.lifecycle.Uninit(); err != nil {
			c.logger.Warn("failed to release notification subsystem", "error", err)
		}
	}

	c.logger.Debug("shutdown complete", "status", status)
	c.exit(status)
	return true
}
