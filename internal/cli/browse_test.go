package cli

import (
	"context"
	"regexp"
	"testing"

	"github.com/avereen/plancast/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var browseAnsi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// drive runs one Update and, if it produced a command, feeds the
// resulting message back in, mimicking the bubbletea runtime.
func drive(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	m, cmd := m.Update(msg)
	for cmd != nil {
		next := cmd()
		if next == nil {
			break
		}
		if _, quitting := next.(tea.QuitMsg); quitting {
			break
		}
		m, cmd = m.Update(next)
	}
	return m
}

func seedBrowseData(t *testing.T, app *App) *domain.Project {
	t.Helper()
	ctx := context.Background()
	proj := &domain.Project{Name: "Rollout"}
	require.NoError(t, app.Projects.Create(ctx, proj))
	ph := &domain.Phase{ProjectID: proj.ID, Name: "Build"}
	_, err := app.Phases.Create(ctx, ph)
	require.NoError(t, err)
	sub := &domain.Subphase{ProjectID: proj.ID, ParentPhaseID: &ph.ID, Name: "Framing"}
	_, err = app.Subphases.Create(ctx, sub)
	require.NoError(t, err)
	return proj
}

func TestBrowseModel_ListsProjects(t *testing.T) {
	app := newTestApp(t)
	seedBrowseData(t, app)

	var m tea.Model = newBrowseModel(app)
	m = drive(t, m, m.(*browseModel).Init()())

	view := browseAnsi.ReplaceAllString(m.View(), "")
	assert.Contains(t, view, "PROJECTS")
	assert.Contains(t, view, "Rollout")
	assert.Contains(t, view, "unscheduled")
}

func TestBrowseModel_EnterOpensTree(t *testing.T) {
	app := newTestApp(t)
	seedBrowseData(t, app)

	var m tea.Model = newBrowseModel(app)
	m = drive(t, m, m.(*browseModel).Init()())
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, screenTree, m.(*browseModel).screen)
	view := browseAnsi.ReplaceAllString(m.View(), "")
	assert.Contains(t, view, "ROLLOUT")
	assert.Contains(t, view, "└─ Build")
	assert.Contains(t, view, "Framing")
}

func TestBrowseModel_EscReturnsToList(t *testing.T) {
	app := newTestApp(t)
	seedBrowseData(t, app)

	var m tea.Model = newBrowseModel(app)
	m = drive(t, m, m.(*browseModel).Init()())
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, screenProjects, m.(*browseModel).screen)

	// Esc on the list quits.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowseModel_CursorBounds(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, app.Projects.Create(ctx, &domain.Project{Name: "One"}))
	require.NoError(t, app.Projects.Create(ctx, &domain.Project{Name: "Two"}))

	var m tea.Model = newBrowseModel(app)
	m = drive(t, m, m.(*browseModel).Init()())

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.(*browseModel).cursor)

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.(*browseModel).cursor, "cursor stops at the last project")
}
