package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client wraps the OpenAI SDK and composes reminder texts.
type Client struct {
	apiKey string
	client *openai.Client
	model  openai.ChatModel
}

// ErrClientNotInitialised is returned when attempting to call the API without a configured client.
var ErrClientNotInitialised = errors.New("openai client not initialised")

const (
	// ReminderTitle is the headline of every list reminder.
	ReminderTitle = "Reminder"

	maxSummaryItems = 3
)

// New returns an OpenAI client when apiKey is provided. Without a key the
// client only produces the fixed reminder body.
func New(apiKey string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		apiKey: apiKey,
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

// DefaultReminderBody is the body used when no summary is available.
func DefaultReminderBody(title string) string {
	return fmt.Sprintf("Don't forget your tasks for today: %s", title)
}

// ComposeReminder returns the notification body for a list scheduled today.
// It never fails: any API problem falls back to DefaultReminderBody.
func (c *Client) ComposeReminder(ctx context.Context, title string, items []string) string {
	summary, err := c.SummarizeList(ctx, title, items)
	if err != nil || summary == "" {
		return DefaultReminderBody(title)
	}
	return summary
}

// SummarizeList asks the model for a one-sentence reminder covering the
// list title and its first few items.
func (c *Client) SummarizeList(ctx context.Context, title string, items []string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("title cannot be empty")
	}
	if c == nil || c.client == nil {
		return "", ErrClientNotInitialised
	}
	if len(items) > maxSummaryItems {
		items = items[:maxSummaryItems]
	}

	content := title
	if len(items) > 0 {
		content = fmt.Sprintf("%s (%s)", title, strings.Join(items, ", "))
	}

	req := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You write a friendly one-sentence reminder for a to-do list that is due today."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(fmt.Sprintf("Write the reminder for this list: %s", content)),
					},
				},
			},
		},
		Temperature:         openai.Float(0.3),
		MaxCompletionTokens: openai.Int(60),
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion received")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
