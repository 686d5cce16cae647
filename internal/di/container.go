// Package di provides dependency injection configuration for Watchdog.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/watchdog/internal/config"
	"github.com/listenupapp/watchdog/internal/di/providers"
)

// NewContainer creates the DI container for one run. The configuration is
// loaded by the caller so that argument errors keep their exit status.
func NewContainer(cfg *config.Config, rt providers.Runtime) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, rt)
	do.Provide(injector, providers.ProvideLogger)

	// Notifications
	do.Provide(injector, providers.ProvideNotifier)

	return injector
}
