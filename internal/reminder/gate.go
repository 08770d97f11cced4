// Package reminder fires the once-a-day list reminders and keeps track of
// calendar-day rollover.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pathakanu/myLists/internal/model"
	"github.com/pathakanu/myLists/internal/notify"
	myopenai "github.com/pathakanu/myLists/internal/openai"
)

// ListSource is the slice of the store the gate reads and writes through.
type ListSource interface {
	GetListsByDate(ctx context.Context, date string) ([]model.List, error)
	GetItemsForList(ctx context.Context, listID uint) ([]model.Item, error)
	MarkListNotified(ctx context.Context, id uint) (bool, error)
}

// Composer builds the body of a reminder.
type Composer interface {
	ComposeReminder(ctx context.Context, title string, items []string) string
}

// Gate fires at most one reminder per list, on the day the list is scheduled.
type Gate struct {
	lists    ListSource
	notifier notify.Notifier
	composer Composer
	enabled  bool
	logger   *slog.Logger
}

// NewGate wires the gate. A nil composer uses the fixed reminder body.
func NewGate(lists ListSource, notifier notify.Notifier, composer Composer, enabled bool, logger *slog.Logger) *Gate {
	return &Gate{
		lists:    lists,
		notifier: notifier,
		composer: composer,
		enabled:  enabled,
		logger:   logger,
	}
}

// Run notifies every pending list scheduled for today and returns how many
// reminders were sent. The notified flag is claimed with a conditional update
// before sending, so concurrent runs never deliver the same reminder twice; a
// failed send is logged and not retried.
func (g *Gate) Run(ctx context.Context, today string) (int, error) {
	if !g.enabled {
		return 0, nil
	}

	lists, err := g.lists.GetListsByDate(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("reminder gate: %w", err)
	}

	var (
		fired int
		errs  []error
	)
	for _, list := range lists {
		if list.Notified {
			continue
		}

		claimed, err := g.lists.MarkListNotified(ctx, list.ID)
		if err != nil {
			g.logger.Error("reminder gate: claim list", "list_id", list.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		if !claimed {
			g.logger.Debug("reminder gate: list already notified", "list_id", list.ID)
			continue
		}

		n := notify.Notification{
			Title: myopenai.ReminderTitle,
			Body:  g.body(ctx, list),
		}
		if err := g.notifier.Notify(ctx, n); err != nil {
			g.logger.Error("reminder gate: send notification", "list_id", list.ID, "error", err)
			errs = append(errs, fmt.Errorf("notify list %d: %w", list.ID, err))
			continue
		}
		g.logger.Info("reminder sent", "list_id", list.ID, "title", list.Title, "date", list.Date)
		fired++
	}
	return fired, errors.Join(errs...)
}

func (g *Gate) body(ctx context.Context, list model.List) string {
	if g.composer == nil {
		return myopenai.DefaultReminderBody(list.Title)
	}

	items, err := g.lists.GetItemsForList(ctx, list.ID)
	if err != nil {
		g.logger.Warn("reminder gate: load items for summary", "list_id", list.ID, "error", err)
		return myopenai.DefaultReminderBody(list.Title)
	}
	texts := make([]string, 0, len(items))
	for _, item := range items {
		if !item.Done {
			texts = append(texts, item.Text)
		}
	}
	return g.composer.ComposeReminder(ctx, list.Title, texts)
}
