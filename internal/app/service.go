// Package app holds the use cases behind the home, calendar, list and item
// views. It validates user input before anything reaches the store.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pathakanu/myLists/internal/calendar"
	"github.com/pathakanu/myLists/internal/model"
)

// ErrValidation reports rejected user input such as an empty title.
var ErrValidation = errors.New("validation error")

// previewItems is how many items a list card shows.
const previewItems = 3

// Repository is the set of access functions the views use.
type Repository interface {
	GetAllItems(ctx context.Context) ([]model.Item, error)
	GetItemsForList(ctx context.Context, listID uint) ([]model.Item, error)
	GetList(ctx context.Context, id uint) (model.List, error)
	GetListsByDate(ctx context.Context, date string) ([]model.List, error)
	GetListsFrom(ctx context.Context, date string) ([]model.List, error)
	InsertList(ctx context.Context, title, date string) (uint, error)
	InsertItem(ctx context.Context, listID uint, text string) (uint, error)
	DeleteItem(ctx context.Context, id uint) error
	DeleteList(ctx context.Context, id uint) error
	UpdateItemDone(ctx context.Context, id uint, done bool) error
}

// ReminderRunner fires the reminders due on a day.
type ReminderRunner interface {
	Run(ctx context.Context, today string) (int, error)
}

// Service composes store reads into views. One Service shares the process
// wide store handle.
type Service struct {
	repo      Repository
	reminders ReminderRunner
	loc       *time.Location
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the views. reminders may be nil.
func NewService(repo Repository, reminders ReminderRunner, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:      repo,
		reminders: reminders,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

// Today returns the current day in the configured location.
func (s *Service) Today() string {
	return calendar.Format(s.now().In(s.loc))
}

// ListSummary is a list with either its preview items or all of them.
type ListSummary struct {
	List      model.List
	Items     []model.Item
	ItemCount int
	DoneCount int
}

// HomeView is today's lists followed by every list from today on.
type HomeView struct {
	Today   string
	Lists   []ListSummary
	Ongoing []ListSummary
	Fired   int
}

// Home refreshes the home view. Reminders for today are fired as a side
// effect; a reminder failure is logged and does not fail the view.
func (s *Service) Home(ctx context.Context) (HomeView, error) {
	today := s.Today()
	view := HomeView{Today: today}

	if s.reminders != nil {
		fired, err := s.reminders.Run(ctx, today)
		if err != nil {
			s.logger.Warn("home: reminders", "error", err)
		}
		view.Fired = fired
	}

	lists, err := s.repo.GetListsFrom(ctx, today)
	if err != nil {
		return HomeView{}, err
	}
	items, err := s.repo.GetAllItems(ctx)
	if err != nil {
		return HomeView{}, err
	}

	byList := make(map[uint][]model.Item, len(lists))
	for _, item := range items {
		byList[item.ListID] = append(byList[item.ListID], item)
	}

	for _, list := range lists {
		summary := summarize(list, byList[list.ID])
		if list.Date == today {
			preview := summary
			preview.Items = head(preview.Items, previewItems)
			view.Lists = append(view.Lists, preview)
		}
		summary.Items = nil
		view.Ongoing = append(view.Ongoing, summary)
	}
	return view, nil
}

// CalendarView is the date strip around a day and the lists on that day.
type CalendarView struct {
	Strip *calendar.Strip
	Lists []ListSummary
}

// Calendar loads the lists scheduled on day, each with all of its items.
func (s *Service) Calendar(ctx context.Context, day string, radius int) (CalendarView, error) {
	if day == "" {
		day = s.Today()
	}
	strip, err := calendar.NewStrip(day, radius)
	if err != nil {
		return CalendarView{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	lists, err := s.repo.GetListsByDate(ctx, day)
	if err != nil {
		return CalendarView{}, err
	}

	view := CalendarView{Strip: strip}
	for _, list := range lists {
		items, err := s.repo.GetItemsForList(ctx, list.ID)
		if err != nil {
			return CalendarView{}, err
		}
		view.Lists = append(view.Lists, summarize(list, items))
	}
	return view, nil
}

// List returns one list with all its items.
func (s *Service) List(ctx context.Context, id uint) (ListSummary, error) {
	list, err := s.repo.GetList(ctx, id)
	if err != nil {
		return ListSummary{}, err
	}
	items, err := s.repo.GetItemsForList(ctx, id)
	if err != nil {
		return ListSummary{}, err
	}
	return summarize(list, items), nil
}

// CreateList validates and stores a new list; an empty day means today.
func (s *Service) CreateList(ctx context.Context, title, day string) (uint, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("%w: list title is empty", ErrValidation)
	}
	if day == "" {
		day = s.Today()
	}
	if !calendar.Valid(day) {
		return 0, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrValidation, day)
	}
	return s.repo.InsertList(ctx, title, day)
}

// AddItem validates and appends an item to an existing list.
func (s *Service) AddItem(ctx context.Context, listID uint, text string) (uint, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: item text is empty", ErrValidation)
	}
	if _, err := s.repo.GetList(ctx, listID); err != nil {
		return 0, err
	}
	return s.repo.InsertItem(ctx, listID, text)
}

// SetItemDone checks or unchecks an item.
func (s *Service) SetItemDone(ctx context.Context, id uint, done bool) error {
	return s.repo.UpdateItemDone(ctx, id, done)
}

// ToggleItem flips the item's done flag and returns the updated item.
func (s *Service) ToggleItem(ctx context.Context, item model.Item) (model.Item, error) {
	if err := s.repo.UpdateItemDone(ctx, item.ID, !item.Done); err != nil {
		return item, err
	}
	item.Done = !item.Done
	return item, nil
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, id uint) error {
	return s.repo.DeleteItem(ctx, id)
}

// DeleteList removes a list and its items.
func (s *Service) DeleteList(ctx context.Context, id uint) error {
	return s.repo.DeleteList(ctx, id)
}

func summarize(list model.List, items []model.Item) ListSummary {
	summary := ListSummary{List: list, Items: items, ItemCount: len(items)}
	for _, item := range items {
		if item.Done {
			summary.DoneCount++
		}
	}
	return summary
}

func head(items []model.Item, n int) []model.Item {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
