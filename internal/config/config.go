// Package config provides Watchdog configuration from command-line flags and
// environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/listenupapp/watchdog/internal/errors"
	"github.com/listenupapp/watchdog/internal/notify"
	"github.com/listenupapp/watchdog/internal/validation"
	"github.com/listenupapp/watchdog/internal/watcher"
)

// Usage is the one-line synopsis printed when the path argument is missing.
const Usage = "Usage: watchdog [flags] <path>"

// envPrefix prefixes every environment variable Watchdog reads.
const envPrefix = "WATCHDOG_"

// Config holds the application configuration.
type Config struct {
	Watch  WatchConfig
	Logger LoggerConfig
	Notify NotifyConfig
}

// WatchConfig holds the watched path and read settings.
type WatchConfig struct {
	// Path comes only from the positional argument.
	Path       string `validate:"required"`
	BufferSize int    `flag:"buffer-size" validate:"gte=0"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string `flag:"log-level" validate:"oneof=debug info warn warning error"`
	Format string `flag:"log-format" validate:"oneof=pretty json"`
}

// NotifyConfig holds notification configuration.
type NotifyConfig struct {
	Sink    string `flag:"sink" validate:"oneof=dbus log"`
	Urgency string `flag:"urgency" validate:"oneof=low normal critical"`
	Icon    string `flag:"icon" validate:"required"`
	AppName string `flag:"app-name" validate:"required"`
}

// Sink names.
const (
	SinkDBus = "dbus"
	SinkLog  = "log"
)

// Load builds the configuration from args (without the program name) and
// getenv. Precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. Default values (lowest priority).
//
// A missing path is a MISSING_ARGUMENT error. Unknown flags, extra
// arguments and bad values are VALIDATION errors.
func Load(args []string, getenv func(string) string) (*Config, error) {
	fs := flag.NewFlagSet("watchdog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (pretty, json)")
	sink := fs.String("sink", "", "Notification sink (dbus, log)")
	urgency := fs.String("urgency", "", "Notification urgency (low, normal, critical)")
	icon := fs.String("icon", "", "Notification icon name")
	appName := fs.String("app-name", "", "Application name sent with notifications")
	bufferSize := fs.String("buffer-size", "", "Event read buffer size in bytes")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Validationf("invalid arguments: %v", err)
	}

	switch fs.NArg() {
	case 0:
		return nil, errors.MissingArgument("missing path argument")
	case 1:
	default:
		return nil, errors.Validationf("unexpected arguments after path: %s", strings.Join(fs.Args()[1:], " "))
	}

	size, err := getIntConfigValue(getenv, *bufferSize, "BUFFER_SIZE", watcher.DefaultBufferSize)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Watch: WatchConfig{
			Path:       fs.Arg(0),
			BufferSize: size,
		},
		Logger: LoggerConfig{
			Level:  strings.ToLower(getConfigValue(getenv, *logLevel, "LOG_LEVEL", "info")),
			Format: strings.ToLower(getConfigValue(getenv, *logFormat, "LOG_FORMAT", "pretty")),
		},
		Notify: NotifyConfig{
			Sink:    strings.ToLower(getConfigValue(getenv, *sink, "SINK", SinkDBus)),
			Urgency: strings.ToLower(getConfigValue(getenv, *urgency, "URGENCY", notify.UrgencyCritical.String())),
			Icon:    getConfigValue(getenv, *icon, "ICON", notify.DefaultIcon),
			AppName: getConfigValue(getenv, *appName, "APP_NAME", "Watchdog"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	v := validation.New()
	if err := v.Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Urgency returns the parsed notification urgency.
func (c *Config) Urgency() notify.Urgency {
	u, err := notify.ParseUrgency(c.Notify.Urgency)
	if err != nil {
		return notify.UrgencyCritical
	}
	return u
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(getenv func(string) string, flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if getenv != nil {
		if envValue := getenv(envPrefix + envKey); envValue != "" {
			return envValue
		}
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(getenv func(string) string, flagValue, envKey string, defaultValue int) (int, error) {
	strValue := getConfigValue(getenv, flagValue, envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return 0, errors.Validationf("invalid %s %q: must be an integer", envPrefix+envKey, strValue)
	}
	return result, nil
}
