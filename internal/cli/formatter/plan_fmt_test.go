package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences for stripping before
// comparison, so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	require.NoError(t, err)
	return &d
}

func sampleTree(t *testing.T) *cascade.ProjectTree {
	t.Helper()
	phaseID := "phase-1"
	subID := "sub-1"
	project := &domain.Project{
		ID:        "proj-1",
		Name:      "Warehouse",
		StartDate: datePtr(t, "2025-03-01"),
		EndDate:   datePtr(t, "2025-03-31"),
	}
	phases := []*domain.Phase{{
		ID:        phaseID,
		ProjectID: project.ID,
		Name:      "Build",
		StartDate: datePtr(t, "2025-03-05"),
		EndDate:   datePtr(t, "2025-03-20"),
	}}
	subphases := []*domain.Subphase{
		{
			ID:            subID,
			ProjectID:     project.ID,
			ParentPhaseID: &phaseID,
			Name:          "Framing",
			StartDate:     datePtr(t, "2025-03-05"),
			EndDate:       datePtr(t, "2025-03-12"),
		},
		{
			ID:               "sub-2",
			ProjectID:        project.ID,
			ParentSubphaseID: &subID,
			Name:             "Inspection",
			IsMilestone:      true,
			StartDate:        datePtr(t, "2025-03-12"),
			EndDate:          datePtr(t, "2025-03-12"),
		},
	}
	return cascade.NewProjectTree(project, phases, subphases)
}

func TestPlanTreeItems(t *testing.T) {
	items := PlanTreeItems(sampleTree(t))
	require.Len(t, items, 4)

	assert.Equal(t, "Warehouse", items[0].Title)
	assert.Equal(t, 0, items[0].Level)
	assert.Equal(t, "2025-03-01 → 2025-03-31", items[0].Dates)

	assert.Equal(t, "Build", items[1].Title)
	assert.Equal(t, 1, items[1].Level)
	assert.True(t, items[1].IsLast)

	assert.Equal(t, "Framing", items[2].Title)
	assert.Equal(t, 2, items[2].Level)

	assert.Equal(t, "Inspection", items[3].Title)
	assert.Equal(t, 3, items[3].Level)
	assert.True(t, items[3].Milestone)
	assert.Equal(t, "2025-03-12", items[3].Dates, "milestones collapse to a single day")
}

func TestFormatPlanTree(t *testing.T) {
	out := stripANSI(FormatPlanTree(sampleTree(t)))

	assert.Contains(t, out, "Warehouse")
	assert.Contains(t, out, "└─ Build")
	assert.Contains(t, out, "│  │  └─ ◆ Inspection")
	assert.Contains(t, out, "[ 2025-03-05 → 2025-03-20 ]")
}

func TestRenderTreeEmpty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}

func TestFormatProjectList(t *testing.T) {
	projects := []*domain.Project{
		{ID: "aaaaaaaa-1111", Name: "Alpha", StartDate: datePtr(t, "2025-01-01"), EndDate: datePtr(t, "2025-02-01")},
		{ID: "bbbbbbbb-2222", Name: "Beta"},
	}
	out := stripANSI(FormatProjectList(projects))

	assert.Contains(t, out, "PROJECTS")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "2025-01-01")
	assert.Contains(t, out, "aaaaaaaa")
	assert.Contains(t, out, "--", "undated projects show a placeholder")
}

func TestFormatProjectDetail(t *testing.T) {
	p := &domain.Project{
		ID:        "cccccccc-3333",
		Name:      "Gamma",
		StartDate: datePtr(t, "2025-03-01"),
		EndDate:   datePtr(t, "2025-03-15"),
		CreatedAt: time.Now().UTC(),
	}
	out := stripANSI(FormatProjectDetail(p, 2, 5))

	assert.Contains(t, out, "Gamma")
	assert.Contains(t, out, "2025-03-01 → 2025-03-15")
	assert.Contains(t, out, "15d")
	assert.Contains(t, out, "2 phases, 5 subphases")
}

func TestDateSpan(t *testing.T) {
	assert.Equal(t, "unscheduled", stripANSI(DateSpan(nil, nil)))
	d := datePtr(t, "2025-05-01")
	assert.Equal(t, "2025-05-01", DateSpan(d, d))
}
