package ui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/pathakanu/myLists/internal/app"
	"github.com/pathakanu/myLists/internal/calendar"
	"github.com/pathakanu/myLists/internal/model"
)

type fakeEditor struct {
	list   model.List
	items  []model.Item
	nextID uint
	err    error
}

func newFakeEditor(texts ...string) *fakeEditor {
	f := &fakeEditor{list: model.List{ID: 7, Title: "Groceries", Date: "2024-06-01"}, nextID: 1}
	for _, text := range texts {
		_, _ = f.AddItem(context.Background(), 7, text)
	}
	return f
}

func (f *fakeEditor) List(_ context.Context, id uint) (app.ListSummary, error) {
	if id != f.list.ID {
		return app.ListSummary{}, errors.New("not found")
	}
	summary := app.ListSummary{List: f.list, Items: append([]model.Item(nil), f.items...), ItemCount: len(f.items)}
	for _, it := range f.items {
		if it.Done {
			summary.DoneCount++
		}
	}
	return summary, nil
}

func (f *fakeEditor) AddItem(_ context.Context, listID uint, text string) (uint, error) {
	if f.err != nil {
		return 0, f.err
	}
	id := f.nextID
	f.nextID++
	f.items = append(f.items, model.Item{ID: id, ListID: listID, Text: text})
	return id, nil
}

func (f *fakeEditor) ToggleItem(_ context.Context, item model.Item) (model.Item, error) {
	if f.err != nil {
		return item, f.err
	}
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i].Done = !item.Done
			return f.items[i], nil
		}
	}
	return item, errors.New("not found")
}

func (f *fakeEditor) DeleteItem(_ context.Context, id uint) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, e Editor, msgs ...tea.Msg) Editor {
	t.Helper()
	var m tea.Model = e
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	out, ok := m.(Editor)
	require.True(t, ok)
	return out
}

func TestEditorTogglesSelectedItem(t *testing.T) {
	t.Parallel()
	svc := newFakeEditor("Milk", "Eggs")

	e, err := NewEditor(context.Background(), svc, 7)
	require.NoError(t, err)
	require.Len(t, e.Items(), 2)

	e = send(t, e, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.True(t, svc.items[0].Done)
	require.True(t, e.Items()[0].Done)

	e = send(t, e, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, svc.items[0].Done)
	require.False(t, e.Items()[0].Done)
}

func TestEditorAddsItem(t *testing.T) {
	t.Parallel()
	svc := newFakeEditor("Milk")

	e, err := NewEditor(context.Background(), svc, 7)
	require.NoError(t, err)

	e = send(t, e, runes("a"))
	require.True(t, e.adding)

	e = send(t, e, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, e.adding)
	require.Contains(t, e.View(), "Item cannot be empty")

	e = send(t, e, runes("Bread"), tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, e.adding)
	require.Len(t, svc.items, 2)
	require.Equal(t, "Bread", svc.items[1].Text)
	require.Len(t, e.Items(), 2)
}

func TestEditorConfirmsDelete(t *testing.T) {
	t.Parallel()
	svc := newFakeEditor("Milk", "Eggs")

	e, err := NewEditor(context.Background(), svc, 7)
	require.NoError(t, err)

	e = send(t, e, runes("d"))
	require.NotNil(t, e.deleting)
	require.Contains(t, e.View(), `Delete "Milk"?`)

	e = send(t, e, runes("n"))
	require.Nil(t, e.deleting)
	require.Len(t, svc.items, 2)

	e = send(t, e, runes("d"), runes("y"))
	require.Len(t, svc.items, 1)
	require.Equal(t, "Eggs", e.Items()[0].Text)
}

func TestEditorShowsStoreErrors(t *testing.T) {
	t.Parallel()
	svc := newFakeEditor("Milk")

	e, err := NewEditor(context.Background(), svc, 7)
	require.NoError(t, err)

	svc.err = errors.New("disk full")
	e = send(t, e, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.Contains(t, e.View(), "disk full")
	require.False(t, svc.items[0].Done)
}

func TestEditorQuits(t *testing.T) {
	t.Parallel()
	e, err := NewEditor(context.Background(), newFakeEditor(), 7)
	require.NoError(t, err)

	_, cmd := e.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	_, err = NewEditor(context.Background(), newFakeEditor(), 8)
	require.Error(t, err)
}

func TestRenderHome(t *testing.T) {
	t.Parallel()

	today := model.List{ID: 1, Title: "Groceries", Date: "2024-06-01"}
	later := model.List{ID: 2, Title: "Trip", Date: "2024-06-05"}
	view := app.HomeView{
		Today: "2024-06-01",
		Lists: []app.ListSummary{{
			List:      today,
			Items:     []model.Item{{ID: 1, Text: "Milk", Done: true}, {ID: 2, Text: "Eggs"}},
			ItemCount: 4,
		}},
		Ongoing: []app.ListSummary{{List: later, ItemCount: 1}},
	}

	out := RenderHome(view)
	require.Contains(t, out, "You have 1 list today")
	require.Contains(t, out, "Groceries")
	require.Contains(t, out, "Milk")
	require.Contains(t, out, "2 more")
	require.Contains(t, out, "05 June 2024")
	require.Contains(t, out, "1 item")
}

func TestRenderCalendarAndList(t *testing.T) {
	t.Parallel()

	strip, err := calendar.NewStrip("2024-06-03", 5)
	require.NoError(t, err)
	out := RenderCalendar(app.CalendarView{Strip: strip})
	require.Contains(t, out, "03 Jun")
	require.Contains(t, out, "nothing scheduled")

	summary := app.ListSummary{
		List:      model.List{ID: 3, Title: "Chores", Date: "2024-06-03"},
		Items:     []model.Item{{ID: 9, Text: "Dishes", Done: true}, {ID: 10, Text: "Laundry"}},
		ItemCount: 2,
		DoneCount: 1,
	}
	out = RenderList(summary)
	require.Contains(t, out, "Listed for 03 June 2024")
	require.Contains(t, out, "1/2")
	require.Contains(t, out, "Laundry")
}

func TestProgressBarClamps(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[░░░░] 0/0", progressBar(0, 0, 4))
	require.Equal(t, "[██░░] 1/2", progressBar(1, 2, 4))
	require.Equal(t, "[████] 5/4", progressBar(5, 4, 4))
}

func TestOKAndFail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	OK(&buf, "saved")
	Fail(&buf, "broken")
	require.Contains(t, buf.String(), "saved")
	require.Contains(t, buf.String(), "broken")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	long := string(bytes.Repeat([]byte("x"), maxTextWidth+5))
	require.Len(t, truncate(long), maxTextWidth)
	require.Equal(t, "short", truncate("short"))
}
