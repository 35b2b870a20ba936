package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avereen/plancast/internal/cascade"
	"github.com/avereen/plancast/internal/cli/formatter"
	"github.com/avereen/plancast/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse projects and their plan trees interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("browse needs a terminal; use 'plancast project list' instead")
			}
			p := tea.NewProgram(newBrowseModel(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

// browseScreen selects which pane the browse model shows.
type browseScreen int

const (
	screenProjects browseScreen = iota
	screenTree
)

type browseKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type browseProjectsMsg struct {
	projects []*domain.Project
	err      error
}

type browseTreeMsg struct {
	tree *cascade.ProjectTree
	err  error
}

// browseModel is the read-only terminal browser: a project list that
// drills into one project's plan tree.
type browseModel struct {
	app    *App
	keys   browseKeyMap
	screen browseScreen

	projects []*domain.Project
	cursor   int
	tree     *cascade.ProjectTree

	loading bool
	err     error
}

func newBrowseModel(app *App) *browseModel {
	return &browseModel{
		app:     app,
		keys:    defaultBrowseKeys(),
		loading: true,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadProjects()
}

func (m *browseModel) loadProjects() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		projects, err := app.Projects.List(context.Background())
		return browseProjectsMsg{projects: projects, err: err}
	}
}

func (m *browseModel) loadTree(projectID string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		tree, err := app.Tree.Fetch(context.Background(), projectID)
		return browseTreeMsg{tree: tree, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case browseProjectsMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.projects = msg.projects
			if m.cursor >= len(m.projects) {
				m.cursor = 0
			}
		}
		return m, nil

	case browseTreeMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.tree = msg.tree
			m.screen = screenTree
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.screen == screenTree {
			m.screen = screenProjects
			m.tree = nil
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		if m.screen == screenTree && m.tree != nil {
			return m, m.loadTree(m.tree.Project().ID)
		}
		return m, m.loadProjects()

	case key.Matches(msg, m.keys.Up):
		if m.screen == screenProjects && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.screen == screenProjects && m.cursor < len(m.projects)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Enter):
		if m.screen == screenProjects && m.cursor < len(m.projects) {
			m.loading = true
			return m, m.loadTree(m.projects[m.cursor].ID)
		}
	}
	return m, nil
}

func (m *browseModel) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}

	if m.screen == screenTree && m.tree != nil {
		return m.treeView()
	}
	return m.projectsView()
}

func (m *browseModel) projectsView() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Projects") + "\n\n")

	if len(m.projects) == 0 {
		b.WriteString("  " + formatter.Dim("No projects yet.") + "\n")
	}

	for i, p := range m.projects {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s\n",
			cursor,
			nameStyle.Render(p.Name),
			formatter.DateSpan(p.StartDate, p.EndDate),
		))
	}

	b.WriteString("\n  " + formatter.Dim("enter open · r refresh · q quit") + "\n")
	return b.String()
}

func (m *browseModel) treeView() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header(m.tree.Project().Name) + "\n\n")

	for _, line := range strings.Split(strings.TrimRight(formatter.FormatPlanTree(m.tree), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n  " + formatter.Dim("esc back · r refresh · q quit") + "\n")
	return b.String()
}
