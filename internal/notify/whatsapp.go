package notify

import (
	"context"
	"fmt"
)

// MessageSender is the part of the Twilio client the WhatsApp channel needs.
type MessageSender interface {
	SendWhatsAppMessage(to, body string) error
	Configured() bool
}

// WhatsApp forwards reminders as WhatsApp messages to a single recipient.
type WhatsApp struct {
	sender    MessageSender
	recipient string
}

// NewWhatsApp binds a sender to the recipient number.
func NewWhatsApp(sender MessageSender, recipient string) *WhatsApp {
	return &WhatsApp{sender: sender, recipient: recipient}
}

func (w *WhatsApp) RequestPermission(context.Context) (Permission, error) {
	if w.sender == nil || !w.sender.Configured() || w.recipient == "" {
		return PermissionDenied, nil
	}
	return PermissionGranted, nil
}

func (w *WhatsApp) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if perm, _ := w.RequestPermission(ctx); perm != PermissionGranted {
		return ErrPermissionDenied
	}
	return w.sender.SendWhatsAppMessage(w.recipient, fmt.Sprintf("%s: %s", n.Title, n.Body))
}
