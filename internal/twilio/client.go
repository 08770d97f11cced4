package twilio

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var (
	// ErrNotConfigured is returned when credentials or the sender number are missing.
	ErrNotConfigured = errors.New("twilio credentials or sender not configured")
	// ErrNoRecipient is returned for a blank recipient number.
	ErrNoRecipient = errors.New("whatsapp recipient missing")
)

// Client wraps the Twilio messaging call used to deliver reminders.
type Client struct {
	client       *twilio.RestClient
	fromWhatsApp string
	logger       *slog.Logger
}

// New creates a Twilio client bound to the configured WhatsApp sender number.
// Missing credentials yield a client whose Configured reports false.
func New(accountSID, authToken, fromWhatsApp string, logger *slog.Logger) *Client {
	c := &Client{fromWhatsApp: fromWhatsApp, logger: logger}
	if accountSID != "" && authToken != "" {
		c.client = twilio.NewRestClientWithParams(twilio.ClientParams{Username: accountSID, Password: authToken})
	}
	return c
}

// Configured reports whether credentials and a sender number are present.
func (c *Client) Configured() bool {
	return c != nil && c.client != nil && normalizeWhatsAppAddress(c.fromWhatsApp) != ""
}

// SendWhatsAppMessage delivers body to the WhatsApp number to.
func (c *Client) SendWhatsAppMessage(to, body string) error {
	const op = "twilio send"
	if !c.Configured() {
		return fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}
	recipient := normalizeWhatsAppAddress(to)
	if recipient == "" {
		return fmt.Errorf("%s: %w", op, ErrNoRecipient)
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(normalizeWhatsAppAddress(c.fromWhatsApp))
	params.SetTo(recipient)
	params.SetBody(body)

	resp, err := c.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%s to %s: %w", op, recipient, err)
	}
	if c.logger != nil && resp.Sid != nil {
		c.logger.Debug("whatsapp message sent", "sid", *resp.Sid, "to", recipient)
	}
	return nil
}

// normalizeWhatsAppAddress turns a phone number into Twilio's
// "whatsapp:+<digits>" address form. Blank input yields "".
func normalizeWhatsAppAddress(number string) string {
	number = strings.TrimSpace(number)
	switch {
	case number == "":
		return ""
	case strings.HasPrefix(number, "whatsapp:"):
		return number
	default:
		return "whatsapp:+" + strings.TrimPrefix(number, "+")
	}
}
