package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyObj             = "org.freedesktop.Notifications"
	notifyPath            = "/org/freedesktop/Notifications"
	notifyMethod          = "org.freedesktop.Notifications.Notify"
	notifyCapabilitiesMth = "org.freedesktop.Notifications.GetCapabilities"
	defaultExpireTimeout  = int32(-1)
)

// Desktop posts notifications to the freedesktop notification service on
// the D-Bus session bus.
type Desktop struct {
	appName string
	bus     *dbus.Conn
}

// NewDesktop connects to the session bus. The caller must Close the notifier.
func NewDesktop(appName string) (*Desktop, error) {
	bus, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to dbus session bus: %w", err)
	}
	return &Desktop{appName: appName, bus: bus}, nil
}

// Close releases the private bus connection.
func (d *Desktop) Close() error {
	return d.bus.Close()
}

// RequestPermission asks the notification service for its capabilities; a
// service that answers is taken as a grant.
func (d *Desktop) RequestPermission(ctx context.Context) (Permission, error) {
	var caps []string
	obj := d.bus.Object(notifyObj, notifyPath)
	if err := obj.CallWithContext(ctx, notifyCapabilitiesMth, 0).Store(&caps); err != nil {
		return PermissionDenied, fmt.Errorf("query notification capabilities: %w", err)
	}
	return PermissionGranted, nil
}

func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	var (
		id  uint32
		obj = d.bus.Object(notifyObj, notifyPath)
	)

	call := obj.CallWithContext(
		ctx,
		notifyMethod,
		0,
		d.appName,
		uint32(0),
		"",
		n.Title,
		n.Body,
		[]string{},
		map[string]dbus.Variant{},
		defaultExpireTimeout,
	)
	if call.Err != nil {
		return fmt.Errorf("send notification %q: %w", n.Title, call.Err)
	}
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("send notification %q: %w", n.Title, err)
	}
	return nil
}
