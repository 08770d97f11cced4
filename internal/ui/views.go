package ui

import (
	"fmt"
	"strings"

	"github.com/pathakanu/myLists/internal/app"
	"github.com/pathakanu/myLists/internal/calendar"
	"github.com/pathakanu/myLists/internal/model"
)

const maxTextWidth = 60

// RenderHome draws today's list cards followed by the ongoing lists.
func RenderHome(view app.HomeView) string {
	noun := "lists"
	if len(view.Lists) == 1 {
		noun = "list"
	}

	lines := []string{
		titleStyle.Render("Today's Task"),
		mutedStyle.Render(fmt.Sprintf("You have %d %s today", len(view.Lists), noun)),
		"",
	}
	for _, summary := range view.Lists {
		lines = append(lines, card(summary)...)
		lines = append(lines, "")
	}

	lines = append(lines, titleStyle.Render("Ongoing List"))
	if len(view.Ongoing) == 0 {
		lines = append(lines, mutedStyle.Render("no upcoming lists"))
	}
	for _, summary := range view.Ongoing {
		lines = append(lines, fmt.Sprintf("%s %s  %s  %s",
			mutedStyle.Render(fmt.Sprintf("#%d", summary.List.ID)),
			accentStyle.Render(truncate(summary.List.Title)),
			mutedStyle.Render(calendar.Human(summary.List.Date)),
			countLabel(summary.ItemCount),
		))
	}
	return panel(lines)
}

// RenderCalendar draws the date strip and the lists on the selected day.
func RenderCalendar(view app.CalendarView) string {
	lines := []string{
		titleStyle.Render("My Schedule"),
		strip(view.Strip, 3),
		"",
		titleStyle.Render("List for " + calendar.Human(view.Strip.Selected)),
	}
	if len(view.Lists) == 0 {
		lines = append(lines, mutedStyle.Render("nothing scheduled"))
	}
	for _, summary := range view.Lists {
		preview := summary
		if len(preview.Items) > 3 {
			preview.Items = preview.Items[:3]
		}
		lines = append(lines, card(preview)...)
	}
	return panel(lines)
}

// RenderList draws one list with every item and a progress bar.
func RenderList(summary app.ListSummary) string {
	lines := []string{
		fmt.Sprintf("%s  %s", titleStyle.Render(summary.List.Title), mutedStyle.Render(fmt.Sprintf("#%d", summary.List.ID))),
		mutedStyle.Render("Listed for " + calendar.Human(summary.List.Date)),
		mutedStyle.Render(progressBar(summary.DoneCount, summary.ItemCount, 28)),
		"",
	}
	if len(summary.Items) == 0 {
		lines = append(lines, mutedStyle.Render("no items"))
	}
	for _, item := range summary.Items {
		lines = append(lines, itemLine(item))
	}
	return panel(lines)
}

func card(summary app.ListSummary) []string {
	lines := []string{fmt.Sprintf("%s %s",
		accentStyle.Bold(true).Render(truncate(summary.List.Title)),
		mutedStyle.Render(fmt.Sprintf("#%d", summary.List.ID)),
	)}
	for _, item := range summary.Items {
		lines = append(lines, "  "+itemLine(item))
	}
	if hidden := summary.ItemCount - len(summary.Items); hidden > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  … %d more", hidden)))
	}
	return lines
}

func itemLine(item model.Item) string {
	id := mutedStyle.Render(fmt.Sprintf("%3d.", item.ID))
	if item.Done {
		return fmt.Sprintf("%s %s %s", id, successStyle.Render(boxChecked), doneStyle.Render(truncate(item.Text)))
	}
	return fmt.Sprintf("%s %s %s", id, mutedStyle.Render(boxUnchecked), truncate(item.Text))
}

// strip shows radius days either side of the selection.
func strip(s *calendar.Strip, radius int) string {
	idx := s.Index()
	lo, hi := idx-radius, idx+radius
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.Days)-1 {
		hi = len(s.Days) - 1
	}

	cells := make([]string, 0, hi-lo+1)
	for _, day := range s.Days[lo : hi+1] {
		label := day[len("2006-01-"):] + " " + monthAbbrev(day)
		if day == s.Selected {
			cells = append(cells, selectedStyle.Render(" "+label+" "))
			continue
		}
		cells = append(cells, mutedStyle.Render(" "+label+" "))
	}
	return strings.Join(cells, "")
}

func monthAbbrev(day string) string {
	t, err := calendar.Parse(day)
	if err != nil {
		return ""
	}
	return t.Format("Jan")
}

func countLabel(n int) string {
	if n == 1 {
		return pendingStyle.Render("1 item")
	}
	return pendingStyle.Render(fmt.Sprintf("%d items", n))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxTextWidth {
		return string(r[:maxTextWidth-3]) + "..."
	}
	return s
}
