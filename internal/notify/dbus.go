package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/listenupapp/watchdog/internal/errors"
)

const (
	busName       = "org.freedesktop.Notifications"
	busPath       = dbus.ObjectPath("/org/freedesktop/Notifications")
	methodNotify  = busName + ".Notify"
	methodInfo    = busName + ".GetServerInformation"
	expireDefault = int32(-1)
)

// busObject is the part of dbus.BusObject the sink calls.
type busObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBusSink sends notifications to the desktop notification daemon over the
// session bus.
type DBusSink struct {
	logger  *slog.Logger
	connect func() (*dbus.Conn, error)
	conn    *dbus.Conn
	obj     busObject
	appName string
	mu      sync.Mutex
}

// NewDBusSink creates a sink that will connect to the session bus on Init.
func NewDBusSink(logger *slog.Logger, appName string) *DBusSink {
	return &DBusSink{
		logger:  logger,
		appName: appName,
		connect: func() (*dbus.Conn, error) { return dbus.ConnectSessionBus() },
	}
}

// Init connects to the session bus and checks that a notification daemon
// answers.
func (s *DBusSink) Init(ctx context.Context) error {
	conn, err := s.connect()
	if err != nil {
		return errors.Wrap(err, errors.CodeNotifyInit, "failed to connect to session bus")
	}

	obj := conn.Object(busName, busPath)
	if err := s.probe(ctx, obj); err != nil {
		_ = conn.Close()
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.obj = obj
	s.mu.Unlock()

	return nil
}

// probe asks the daemon to identify itself.
func (s *DBusSink) probe(ctx context.Context, obj busObject) error {
	var name, vendor, version, specVersion string
	call := obj.CallWithContext(ctx, methodInfo, 0)
	if err := call.Store(&name, &vendor, &version, &specVersion); err != nil {
		return errors.Wrap(err, errors.CodeNotifyInit, "notification daemon not available")
	}

	s.logger.Debug("connected to notification daemon",
		"server", name,
		"vendor", vendor,
		"version", version,
		"spec_version", specVersion,
	)
	return nil
}

// Notify sends one notification.
func (s *DBusSink) Notify(ctx context.Context, req Request) error {
	s.mu.Lock()
	obj := s.obj
	s.mu.Unlock()

	if obj == nil {
		return errors.Newf(errors.CodePresentFailed, "notification sink not initialized")
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(req.Urgency)),
	}

	var id uint32
	call := obj.CallWithContext(ctx, methodNotify, 0,
		s.appName,
		uint32(0), // replaces_id
		req.Icon,
		req.Title,
		req.Message,
		[]string{}, // actions
		hints,
		expireDefault,
	)
	if err := call.Store(&id); err != nil {
		return errors.Wrap(err, errors.CodePresentFailed, "failed to send notification")
	}

	s.logger.Debug("notification sent", "id", id, "title", req.Title, "message", req.Message)
	return nil
}

// Uninit closes the session bus connection.
func (s *DBusSink) Uninit() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.obj = nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}
