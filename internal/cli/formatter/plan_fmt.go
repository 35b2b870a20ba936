package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/domain"
)

// FormatProjectList renders a styled project table inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "START", "END"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		start := Dim("--")
		end := Dim("--")
		if p.StartDate != nil {
			start = p.StartDate.Format(domain.DateLayout)
		}
		if p.EndDate != nil {
			end = p.EndDate.Format(domain.DateLayout)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			start,
			end,
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Projects", table)
}

// FormatProjectDetail renders a single project's metadata card.
func FormatProjectDetail(p *domain.Project, phaseCount, subphaseCount int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(p.Name), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Dates"), DateSpan(p.StartDate, p.EndDate)))
	if badge := DurationBadge(p.StartDate, p.EndDate); badge != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Span "), badge))
	}
	b.WriteString(fmt.Sprintf("%s  %d phases, %d subphases\n", Dim("Size "), phaseCount, subphaseCount))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Added"), HumanDate(p.CreatedAt)))
	return RenderBox("Project", b.String())
}

// PlanTreeItems flattens a project hierarchy into TreeItems, depth first,
// preserving each level's order.
func PlanTreeItems(tree *cascade.ProjectTree) []TreeItem {
	p := tree.Project()
	items := []TreeItem{{
		Title: p.Name,
		Dates: dateBadge(p.StartDate, p.EndDate),
	}}

	phases := tree.Phases()
	for i, ph := range phases {
		items = append(items, TreeItem{
			Title:     ph.Name,
			Level:     1,
			IsLast:    i == len(phases)-1,
			Milestone: ph.IsMilestone,
			Dates:     dateBadge(ph.StartDate, ph.EndDate),
		})
		items = appendSubphaseItems(items, tree, tree.PhaseChildren(ph.ID), 2)
	}
	return items
}

func appendSubphaseItems(items []TreeItem, tree *cascade.ProjectTree, children []*domain.Subphase, level int) []TreeItem {
	for i, s := range children {
		items = append(items, TreeItem{
			Title:     s.Name,
			Level:     level,
			IsLast:    i == len(children)-1,
			Milestone: s.IsMilestone,
			Dates:     dateBadge(s.StartDate, s.EndDate),
		})
		items = appendSubphaseItems(items, tree, tree.SubphaseChildren(s.ID), level+1)
	}
	return items
}

// FormatPlanTree renders a project's full hierarchy as a tree.
func FormatPlanTree(tree *cascade.ProjectTree) string {
	return RenderTree(PlanTreeItems(tree))
}

// dateBadge is the compact badge form of a range; undated nodes get no
// badge rather than a placeholder.
func dateBadge(start, end *time.Time) string {
	if start == nil || end == nil {
		return ""
	}
	s := start.Format(domain.DateLayout)
	e := end.Format(domain.DateLayout)
	if s == e {
		return s
	}
	return s + " → " + e
}
