package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/relgraph/pkg/graph"
	"github.com/matzehuels/relgraph/pkg/interaction"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// searchModel - Interactive node search
// =============================================================================

// searchModel is the bubbletea model for the interactive search. Moving the
// cursor focuses a result and enter selects it, the same events the viewer's
// search box sends.
type searchModel struct {
	graph   *graph.Graph
	coord   *interaction.Coordinator
	input   textinput.Model
	results []interaction.Candidate
	cursor  int // index into results, -1 when nothing is focused
	last    interaction.Instruction
	done    bool
}

func newSearchModel(g *graph.Graph) searchModel {
	in := textinput.New()
	in.Placeholder = "search nodes"
	in.Prompt = "› "
	in.CharLimit = 256
	in.Focus()
	return searchModel{
		graph:  g,
		coord:  interaction.NewCoordinator(nil),
		input:  in,
		cursor: -1,
	}
}

func (m searchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		case "up":
			m.move(-1)
			return m, nil
		case "down":
			m.move(1)
			return m, nil
		case "enter":
			if m.cursor >= 0 {
				m.last = m.coord.OnChange(&m.results[m.cursor])
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != before {
		m.results = m.coord.PostSearchResult(m.graph.Search(q))
		m.cursor = -1
		m.last = m.coord.OnFocus(nil)
	}
	return m, cmd
}

// move steps the cursor over selectable results and focuses the one it
// lands on.
func (m *searchModel) move(step int) {
	i := m.cursor
	for {
		i += step
		if i < 0 || i >= len(m.results) {
			return
		}
		if m.results[i].Selectable() {
			break
		}
	}
	m.cursor = i
	m.last = m.coord.OnFocus(&m.results[i])
}

func (m searchModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Search Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ focus  ⏎ select  esc quit"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	for i, r := range m.results {
		if !r.Selectable() {
			b.WriteString("  " + listDimStyle.Render(r.Message))
			b.WriteString("\n")
			continue
		}
		label := r.ID
		if r.Label != "" && r.Label != r.ID {
			label += "  " + r.Label
		}
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + label))
		} else {
			b.WriteString(listNormalStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	if len(m.results) == 0 && strings.TrimSpace(m.input.Value()) != "" {
		b.WriteString(listDimStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(instructionLine(m.last.Target, m.last.Animate))
	if v := m.coord.Value(); v != nil {
		b.WriteString(listDimStyle.Render("  selected: " + v.ID))
	}
	b.WriteString("\n")
	return b.String()
}
