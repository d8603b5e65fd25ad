// Package tui provides the interactive orb catalog browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/orbit/internal/catalog"
	"github.com/ShayCichocki/orbit/internal/match"
	"github.com/ShayCichocki/orbit/pkg/models"
)

// maxVisibleResults caps the result rows rendered below the input.
const maxVisibleResults = 12

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// BrowseModel is the bubbletea model for the catalog browser.
type BrowseModel struct {
	input    textinput.Model
	matcher  *match.Matcher
	library  *catalog.Library
	results  []models.MatchResult
	selected int
	width    int
}

// NewBrowseModel creates the browser over a loaded library.
func NewBrowseModel(library *catalog.Library, matcher *match.Matcher) *BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "Type a task description to rank orbs..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return &BrowseModel{
		input:   ti,
		matcher: matcher,
		library: library,
		width:   80,
	}
}

// Init implements tea.Model.
func (m *BrowseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 6

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down":
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh re-runs the search for the current input value.
func (m *BrowseModel) refresh() {
	query := m.input.Value()
	if strings.TrimSpace(query) == "" {
		m.results = nil
		m.selected = 0
		return
	}

	m.results = m.matcher.Search(query)
	if m.selected >= len(m.results) {
		m.selected = 0
	}
}

// View implements tea.Model.
func (m *BrowseModel) View() string {
	var b strings.Builder

	stats := m.library.Stats()
	header := titleStyle.Render("Orbit catalog browser") +
		dimStyle.Render(fmt.Sprintf("  %d orbs / %d categories", stats.TotalOrbs, stats.CategoryCount))
	b.WriteString(header + "\n\n")

	b.WriteString(boxStyle.Width(m.width - 2).Render("> " + m.input.View()))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		b.WriteString(dimStyle.Render("  No matches. Orbs rank by title, keyword, and category overlap."))
		b.WriteString("\n")
	} else {
		visible := m.results
		if len(visible) > maxVisibleResults {
			visible = visible[:maxVisibleResults]
		}
		for i, res := range visible {
			line := fmt.Sprintf(" %s  %s %s",
				scoreStyle.Render(fmt.Sprintf("%5.1f", res.Score)),
				res.Orb.Title,
				dimStyle.Render("["+res.Category+"]"))
			if i == m.selected {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}

		if m.selected < len(visible) {
			b.WriteString("\n" + m.detailView(visible[m.selected]))
		}
	}

	b.WriteString("\n" + dimStyle.Render("  up/down select · esc quit"))
	return b.String()
}

// detailView renders the selected orb's full record.
func (m *BrowseModel) detailView(res models.MatchResult) string {
	orb := res.Orb
	lines := []string{
		titleStyle.Render(orb.Title),
		"keywords: " + strings.Join(orb.Keywords, ", "),
	}
	if orb.Description != "" {
		lines = append(lines, orb.Description)
	}
	if orb.AutomationReference != "" {
		lines = append(lines, dimStyle.Render("runbook: "+orb.AutomationReference))
	}
	return boxStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

// RunBrowser starts the interactive browser and blocks until exit.
func RunBrowser(library *catalog.Library, matcher *match.Matcher) error {
	p := tea.NewProgram(NewBrowseModel(library, matcher))
	_, err := p.Run()
	return err
}
