// Package providers contains dependency injection providers for Watchdog.
package providers

import (
	"io"
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/watchdog/internal/config"
	"github.com/listenupapp/watchdog/internal/id"
	"github.com/listenupapp/watchdog/internal/logger"
	"github.com/listenupapp/watchdog/internal/notify"
)

// Runtime carries the process-level collaborators the providers need. Zero
// fields fall back to the real process.
type Runtime struct {
	Stderr io.Writer
	// NewSink replaces the sink selected by configuration.
	NewSink func(cfg *config.Config, logger *slog.Logger) notify.Service
}

// ProvideLogger provides the structured logger. Every line carries the
// session id of this run.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	rt := do.MustInvoke[Runtime](i)

	w := rt.Stderr
	if w == nil {
		w = os.Stderr
	}

	session, err := id.Session()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Writer:    w,
		Format:    cfg.Logger.Format,
		Level:     logger.ParseLevel(cfg.Logger.Level),
		AddSource: cfg.Logger.Level == "debug",
	}).WithField("session", session)

	log.Debug("Starting Watchdog",
		"path", cfg.Watch.Path,
		"sink", cfg.Notify.Sink,
		"urgency", cfg.Notify.Urgency,
		"buffer_size", cfg.Watch.BufferSize,
	)

	return log, nil
}
