package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/watchdog/internal/config"
	"github.com/listenupapp/watchdog/internal/logger"
	"github.com/listenupapp/watchdog/internal/notify"
)

// NotifierHandle wraps the configured notification service. Its lifecycle is
// driven by the caller: Init at startup and Uninit from the shutdown
// controller, so the handle is not do.Shutdownable.
type NotifierHandle struct {
	notify.Service
}

// ProvideNotifier provides the notification service selected by -sink.
func ProvideNotifier(i do.Injector) (*NotifierHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	rt := do.MustInvoke[Runtime](i)
	log := do.MustInvoke[*logger.Logger](i)

	sinkLog := log.WithField("sink", cfg.Notify.Sink).Logger

	if rt.NewSink != nil {
		return &NotifierHandle{Service: rt.NewSink(cfg, sinkLog)}, nil
	}

	switch cfg.Notify.Sink {
	case config.SinkLog:
		return &NotifierHandle{Service: notify.NewLogSink(sinkLog)}, nil
	default:
		return &NotifierHandle{Service: notify.NewDBusSink(sinkLog, cfg.Notify.AppName)}, nil
	}
}
