// Package app wires the configuration, the event queue, the notification sink
// and the shutdown controller together and runs one watch session.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/listenupapp/watchdog/internal/config"
	"github.com/listenupapp/watchdog/internal/di"
	"github.com/listenupapp/watchdog/internal/di/providers"
	"github.com/listenupapp/watchdog/internal/errors"
	"github.com/listenupapp/watchdog/internal/logger"
	"github.com/listenupapp/watchdog/internal/monitor"
	"github.com/listenupapp/watchdog/internal/notify"
	"github.com/listenupapp/watchdog/internal/pathname"
	"github.com/listenupapp/watchdog/internal/shutdown"
	"github.com/listenupapp/watchdog/internal/watcher"
)

// Env holds the process-level collaborators of Main. Zero fields fall back
// to the real process.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Exit ends the process once shutdown has run. When nil, Main returns
	// the status instead.
	Exit func(int)

	OpenQueue func(*slog.Logger) (watcher.Queue, error)
	NewSink   func(*config.Config, *slog.Logger) notify.Service

	// Signals that start a clean shutdown.
	Signals []os.Signal
}

func (e *Env) setDefaults() {
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
	if e.Getenv == nil {
		e.Getenv = os.Getenv
	}
	if e.OpenQueue == nil {
		e.OpenQueue = watcher.Open
	}
	if e.Signals == nil {
		e.Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT}
	}
}

// Main runs Watchdog with args (without the program name) and returns the
// exit status.
func Main(args []string, env Env) int {
	env.setDefaults()

	cfg, err := config.Load(args, env.Getenv)
	if err != nil {
		if errors.Is(err, errors.ErrMissingArgument) {
			fmt.Fprintln(env.Stderr, config.Usage)
		} else {
			fmt.Fprintf(env.Stderr, "watchdog: %v\n", err)
		}
		return errors.StatusOf(err)
	}

	injector := di.NewContainer(cfg, providers.Runtime{
		Stderr:  env.Stderr,
		NewSink: env.NewSink,
	})

	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		fmt.Fprintf(env.Stderr, "watchdog: %v\n", err)
		return errors.ExitMissingArgument
	}

	r := &runner{env: env, cfg: cfg, log: log.Logger}

	handle, err := do.Invoke[*providers.NotifierHandle](injector)
	if err != nil {
		return r.fail(errors.Wrap(err, errors.CodeNotifyInit, "failed to create notification sink"))
	}

	return r.run(handle.Service)
}

// runner carries one session through its startup stages.
type runner struct {
	env Env
	cfg *config.Config
	log *slog.Logger
}

// fail reports a fatal startup error on stderr and in the log.
func (r *runner) fail(err error) int {
	status := errors.StatusOf(err)
	fmt.Fprintf(r.env.Stderr, "watchdog: %v\n", err)
	r.log.Error("fatal", "error", err, "status", status)
	return status
}

func (r *runner) run(svc notify.Service) int {
	path := r.cfg.Watch.Path

	title, err := pathname.DisplayName(path)
	if err != nil {
		return r.fail(err)
	}

	if err := svc.Init(context.Background()); err != nil {
		return r.fail(err)
	}

	queue, err := r.env.OpenQueue(r.log)
	if err != nil {
		r.release(svc)
		return r.fail(err)
	}

	wd, err := queue.AddWatch(path, watcher.InterestMask)
	if err != nil {
		if cerr := queue.Close(); cerr != nil {
			r.log.Warn("Error closing inotify instance", "error", cerr)
		}
		r.release(svc)
		return r.fail(err)
	}
	r.log.Info("watching", "path", path, "title", title, "wd", wd)

	var status atomic.Int32
	exit := func(code int) {
		status.Store(int32(code)) //nolint:gosec // G115: exit statuses are 0-6
		if r.env.Exit != nil {
			r.env.Exit(code)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := shutdown.New(r.log, svc, cancel, exit)
	ctrl.Attach(queue)
	ctrl.Watch(ctx, r.env.Signals...)

	mon := monitor.New(r.log, queue, svc, ctrl, r.env.Stdout, monitor.Options{
		Title:      title,
		Icon:       r.cfg.Notify.Icon,
		Urgency:    r.cfg.Urgency(),
		BufferSize: r.cfg.Watch.BufferSize,
	})

	if err := mon.Run(ctx); err != nil {
		fmt.Fprintf(r.env.Stderr, "watchdog: %v\n", err)
		r.log.Error("Error reading inotify events", "error", err)
		ctrl.Terminate(errors.StatusOf(err))
	}

	// Run only returns nil once shutdown has begun.
	<-ctrl.Done()
	return int(status.Load())
}

// release uninitializes the sink after a failed startup stage.
func (r *runner) release(svc notify.Lifecycle) {
	if err := svc.Uninit(); err != nil {
		r.log.Warn("failed to release notification subsystem", "error", err)
	}
}
