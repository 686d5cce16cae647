// Package notify presents classified watch events to the user.
package notify

import (
	"context"
	"fmt"
	"strings"
)

// DefaultIcon is the freedesktop icon name shown with every notification.
const DefaultIcon = "dialog-information"

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// String returns the string representation of the urgency.
func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseUrgency converts a level name to an Urgency.
func ParseUrgency(s string) (Urgency, error) {
	switch strings.ToLower(s) {
	case "low":
		return UrgencyLow, nil
	case "normal":
		return UrgencyNormal, nil
	case "critical":
		return UrgencyCritical, nil
	default:
		return 0, fmt.Errorf("unknown urgency %q", s)
	}
}

// Request is one notification to present. It is built per event and not
// retained.
type Request struct {
	Title   string
	Message string
	Icon    string
	Urgency Urgency
}

// Sink presents notifications. A failed Notify concerns only that request.
type Sink interface {
	Notify(ctx context.Context, req Request) error
}

// Lifecycle is the process-wide setup and teardown of a notification
// subsystem. Uninit runs at most once, during shutdown.
type Lifecycle interface {
	Init(ctx context.Context) error
	Uninit() error
}

// Service is a sink together with its lifecycle hooks.
type Service interface {
	Sink
	Lifecycle
}
