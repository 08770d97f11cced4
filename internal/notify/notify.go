// Package notify delivers reminders through the channels available on the
// machine: the desktop notification service, WhatsApp via Twilio, or the log.
package notify

import (
	"context"
	"errors"
	"log/slog"
)

// Permission is the answer of a channel's permission check.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// ErrPermissionDenied is returned by Notify when the channel refuses delivery.
var ErrPermissionDenied = errors.New("notification permission denied")

// Notification is the payload of a local reminder.
type Notification struct {
	Title string
	Body  string
}

// Notifier fires notifications and reports whether it is allowed to.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
	RequestPermission(ctx context.Context) (Permission, error)
}

// LogNotifier writes notifications to a structured logger. It is always permitted.
type LogNotifier struct {
	Logger *slog.Logger
}

// NewLogNotifier returns a notifier that only logs.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.Logger.InfoContext(ctx, "notification", "title", n.Title, "body", n.Body)
	return nil
}

func (l *LogNotifier) RequestPermission(context.Context) (Permission, error) {
	return PermissionGranted, nil
}
