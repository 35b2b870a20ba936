package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/avereen/plancast/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// DateSpan formats a start/end date pair as "2025-03-01 → 2025-03-15".
// Milestones, which hold a single day, render as just that day. Nil dates
// render as a dimmed placeholder.
func DateSpan(start, end *time.Time) string {
	if start == nil || end == nil {
		return Dim("unscheduled")
	}
	s := start.Format(domain.DateLayout)
	e := end.Format(domain.DateLayout)
	if s == e {
		return s
	}
	return s + " → " + e
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// DurationBadge renders the inclusive day count of a range, such as "15d".
func DurationBadge(start, end *time.Time) string {
	if start == nil || end == nil {
		return ""
	}
	days := int(end.Sub(*start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return StylePurple.Render(strconv.Itoa(days) + "d")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
