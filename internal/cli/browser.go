package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/render/textarc"
)

var (
	browserHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	browserTextStyle   = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
	browserHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const scrollStep = 8

// =============================================================================
// BrowserModel - Interactive sentence browser
// =============================================================================

// BrowserModel is the bubbletea model behind `arcstrata view`. It shows one
// laid-out sentence at a time.
type BrowserModel struct {
	Layouts []graph.Layout
	Cursor  int
	Labels  bool
	Edges   bool // show the edge table below the diagram
	Width   int
	Scroll  int // horizontal scroll offset in columns
	Styles  *textarc.Styles
}

// NewBrowserModel creates a browser positioned on the first sentence.
func NewBrowserModel(layouts []graph.Layout, labels bool) BrowserModel {
	return BrowserModel{
		Layouts: layouts,
		Labels:  labels,
		Width:   80,
		Styles:  textarc.DefaultStyles(),
	}
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "down", "j", "n", "pgdown":
			if m.Cursor < len(m.Layouts)-1 {
				m.Cursor++
				m.Scroll = 0
			}
		case "up", "k", "p", "pgup":
			if m.Cursor > 0 {
				m.Cursor--
				m.Scroll = 0
			}
		case "g", "home":
			m.Cursor, m.Scroll = 0, 0
		case "G", "end":
			m.Cursor, m.Scroll = max(len(m.Layouts)-1, 0), 0
		case "right", "l":
			if m.Scroll+scrollStep < m.diagramWidth() {
				m.Scroll += scrollStep
			}
		case "left", "h":
			m.Scroll = max(m.Scroll-scrollStep, 0)
		case "L":
			m.Labels = !m.Labels
		case "e":
			m.Edges = !m.Edges
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, 20)
	}
	return m, nil
}

func (m BrowserModel) View() string {
	var b strings.Builder
	if len(m.Layouts) == 0 {
		b.WriteString(StyleDim.Render("No sentences."))
		b.WriteString("\n")
		return b.String()
	}
	l := m.Layouts[m.Cursor]

	b.WriteString(StyleTitle.Render(l.SentenceID))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layouts))))
	b.WriteString("\n")
	if l.Text != "" {
		b.WriteString(browserTextStyle.Render(l.Text))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.diagram(l))
	b.WriteString("\n\n")
	b.WriteString(summaryLine(l))
	b.WriteString("\n")

	if m.Edges {
		b.WriteString("\n")
		b.WriteString(edgeTable(l))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(browserHelpStyle.Render("↑/↓ sentence  ←/→ scroll  L labels  e edges  q quit"))
	return b.String()
}

// diagram renders l cropped to the window, styling the rows above and
// below the token line separately.
func (m BrowserModel) diagram(l graph.Layout) string {
	lines, tokenRow := diagramLines(l, m.Labels)
	out := make([]string, len(lines))
	for i, line := range lines {
		line = cropColumns(line, m.Scroll, m.Width)
		if m.Styles != nil {
			switch {
			case i < tokenRow:
				line = m.Styles.Above.Render(line)
			case i == tokenRow:
				line = m.Styles.Tokens.Render(line)
			default:
				line = m.Styles.Below.Render(line)
			}
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

func (m BrowserModel) diagramWidth() int {
	if len(m.Layouts) == 0 {
		return 0
	}
	lines, _ := diagramLines(m.Layouts[m.Cursor], m.Labels)
	w := 0
	for _, line := range lines {
		w = max(w, len([]rune(line)))
	}
	return w
}

// diagramLines renders l without styles and returns its lines together
// with the index of the token line.
func diagramLines(l graph.Layout, labels bool) ([]string, int) {
	text := textarc.Render(l, textarc.Options{Labels: labels})
	if text == "" {
		return nil, 0
	}
	above := 0
	for _, e := range l.Edges {
		above = max(above, e.Strata)
	}
	tokenRow := 0
	if above > 0 {
		tokenRow = above + 1
	}
	return strings.Split(text, "\n"), tokenRow
}

func cropColumns(s string, from, width int) string {
	r := []rune(s)
	if from >= len(r) {
		return ""
	}
	r = r[from:]
	if width > 0 && len(r) > width {
		r = r[:width]
	}
	return string(r)
}

func summaryLine(l graph.Layout) string {
	below := 0
	for _, e := range l.Edges {
		if e.Strata < 0 {
			below++
		}
	}
	parts := []string{
		plural(len(l.Tokens), "token"),
		plural(len(l.Edges), "edge"),
		"max stratum " + strconv.Itoa(l.MaxStrata),
	}
	if below > 0 {
		parts = append(parts, StyleWarning.Render(strconv.Itoa(below)+" below"))
	}
	if n := len(l.Dangling); n > 0 {
		parts = append(parts, StyleWarning.Render(plural(n, "dangling edge")))
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}

// edgeTable lists every edge with its stratum and anchor offsets.
func edgeTable(l graph.Layout) string {
	forms := make(map[string]string, len(l.Tokens))
	for _, t := range l.Tokens {
		forms[t.ID] = t.Form
	}
	name := func(id string) string {
		if f, ok := forms[id]; ok {
			return f
		}
		return id
	}

	rows := make([][]string, 0, len(l.Edges))
	for _, e := range l.Edges {
		rows = append(rows, []string{
			e.Label,
			name(e.Source) + " → " + name(e.Target),
			strconv.Itoa(e.Strata),
			fmt.Sprintf("%d/%d", e.OffsetMin, e.OffsetMax),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Label", "Edge", "Stratum", "Offsets").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return browserHeaderStyle
			}
			if col == 2 && row >= 0 && row < len(l.Edges) && l.Edges[row].Strata < 0 {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
