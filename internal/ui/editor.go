package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pathakanu/myLists/internal/app"
	"github.com/pathakanu/myLists/internal/model"
)

// ListEditor is the subset of app.Service the editor mutates through.
type ListEditor interface {
	List(ctx context.Context, id uint) (app.ListSummary, error)
	AddItem(ctx context.Context, listID uint, text string) (uint, error)
	ToggleItem(ctx context.Context, item model.Item) (model.Item, error)
	DeleteItem(ctx context.Context, id uint) error
}

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct {
	item model.Item
}

func (i listItem) Title() string       { return i.item.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Text }

type itemDelegate struct{}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, it list.Item) {
	li, ok := it.(listItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s %s", mutedStyle.Render(boxUnchecked), truncate(li.item.Text))
	if li.item.Done {
		line = fmt.Sprintf("%s %s", successStyle.Render(boxChecked), doneStyle.Render(truncate(li.item.Text)))
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

// Editor is the interactive item editor for a single list. Every change
// is written through immediately.
type Editor struct {
	ctx     context.Context
	svc     ListEditor
	summary app.ListSummary

	list list.Model
	ti   textinput.Model

	adding   bool
	deleting *model.Item
	err      string
}

// NewEditor loads the list and prepares the model.
func NewEditor(ctx context.Context, svc ListEditor, listID uint) (Editor, error) {
	summary, err := svc.List(ctx, listID)
	if err != nil {
		return Editor{}, err
	}

	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind := key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle"))
	deleteBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	bindings := func() []key.Binding { return []key.Binding{addBind, toggleBind, deleteBind} }
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item..."
	ti.CharLimit = 200

	e := Editor{ctx: ctx, svc: svc, list: l, ti: ti}
	e.apply(summary)
	return e, nil
}

// RunEditor opens the editor full screen until the user quits.
func RunEditor(ctx context.Context, svc ListEditor, listID uint) error {
	e, err := NewEditor(ctx, svc, listID)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(e, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Items returns the items currently shown.
func (e Editor) Items() []model.Item {
	out := make([]model.Item, 0, len(e.list.Items()))
	for _, it := range e.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.item)
		}
	}
	return out
}

func (e Editor) Init() tea.Cmd { return nil }

func (e Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		e.list.SetSize(size.Width-4, size.Height-6)
		return e, nil
	}

	if e.adding {
		return e.updateAdding(msg)
	}
	if e.deleting != nil {
		return e.updateDeleting(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || e.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		e.list, cmd = e.list.Update(msg)
		return e, cmd
	}

	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		return e, tea.Quit
	case " ", "enter":
		if item, ok := e.selected(); ok {
			if _, err := e.svc.ToggleItem(e.ctx, item); err != nil {
				e.err = err.Error()
				return e, nil
			}
			e.reload()
		}
		return e, nil
	case "d":
		if item, ok := e.selected(); ok {
			e.deleting = &item
		}
		return e, nil
	case "a":
		e.adding = true
		e.err = ""
		e.ti.SetValue("")
		e.ti.Focus()
		return e, nil
	}

	var cmd tea.Cmd
	e.list, cmd = e.list.Update(msg)
	return e, cmd
}

func (e Editor) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			text := strings.TrimSpace(e.ti.Value())
			if text == "" {
				e.err = "Item cannot be empty"
				return e, nil
			}
			if _, err := e.svc.AddItem(e.ctx, e.summary.List.ID, text); err != nil {
				e.err = err.Error()
				return e, nil
			}
			e.stopAdding()
			e.reload()
			return e, nil
		case "esc":
			e.stopAdding()
			return e, nil
		}
	}
	var cmd tea.Cmd
	e.ti, cmd = e.ti.Update(msg)
	return e, cmd
}

func (e Editor) updateDeleting(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}
	switch keyMsg.String() {
	case "y", "enter":
		target := e.deleting
		e.deleting = nil
		if err := e.svc.DeleteItem(e.ctx, target.ID); err != nil {
			e.err = err.Error()
			return e, nil
		}
		e.reload()
	case "n", "esc":
		e.deleting = nil
	}
	return e, nil
}

func (e Editor) View() string {
	content := e.list.View()
	bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)

	switch {
	case e.adding:
		title := "Add new item"
		if e.err != "" {
			title += "  " + errorStyle.Render(e.err)
		}
		content += "\n" + bar.Render(title+"\n"+e.ti.View())
	case e.deleting != nil:
		content += "\n" + bar.Render(fmt.Sprintf("Delete %q? %s", truncate(e.deleting.Text), helpStyle.Render("y/n")))
	case e.err != "":
		content += "\n" + errorStyle.Render(e.err)
	}
	return panel([]string{content})
}

func (e *Editor) stopAdding() {
	e.adding = false
	e.err = ""
	e.ti.SetValue("")
	e.ti.Blur()
}

func (e *Editor) selected() (model.Item, bool) {
	li, ok := e.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return li.item, true
}

func (e *Editor) reload() {
	summary, err := e.svc.List(e.ctx, e.summary.List.ID)
	if err != nil {
		e.err = err.Error()
		return
	}
	e.err = ""
	e.apply(summary)
}

func (e *Editor) apply(summary app.ListSummary) {
	e.summary = summary
	items := make([]list.Item, 0, len(summary.Items))
	for _, it := range summary.Items {
		items = append(items, listItem{item: it})
	}
	e.list.SetItems(items)
	e.list.Title = fmt.Sprintf("%s   %s %d  %s %d",
		titleStyle.Render(summary.List.Title),
		successStyle.Render("✔"), summary.DoneCount,
		pendingStyle.Render("•"), summary.ItemCount-summary.DoneCount,
	)
}
