// Package textarc draws laid-out sentences as monospace arc diagrams.
//
// Every stratum gets its own row: positive strata stack upwards from the
// token line, negative strata downwards. Each token cell is split into a
// left region where arcs ending at the token (their max end) come down,
// a middle column for root and self edges, and a right region where arcs
// starting at the token (their min end) leave. Anchor offsets move an
// arc's foot inwards within its region, so arcs stacked at a shared token
// nest instead of overlapping:
//
//	        ╭─╮
//	   ╭─╮• │ │
//	   ▼ │▼ │ ▼
//	Dogs bark loudly
//
// Arrowheads mark the dependent (target) end of every edge.
package textarc

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/arcstrata/pkg/graph"
)

// Options configures rendering.
type Options struct {
	// Labels writes each edge's label onto its arc when it fits.
	Labels bool
	// Styles colors the output; nil renders plain text.
	Styles *Styles
}

// Styles holds the lipgloss styles applied to each part of the diagram.
type Styles struct {
	Above  lipgloss.Style
	Below  lipgloss.Style
	Tokens lipgloss.Style
}

// DefaultStyles returns the color scheme used by the CLI.
func DefaultStyles() *Styles {
	return &Styles{
		Above:  lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
		Below:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Tokens: lipgloss.NewStyle().Bold(true),
	}
}

const (
	glyphH         = '─'
	glyphV         = '│'
	glyphCross     = '┼'
	glyphDown      = '▼'
	glyphUp        = '▲'
	glyphRoot      = '•'
	glyphSelf      = '○'
	glyphTopLeft   = '╭'
	glyphTopRight  = '╮'
	glyphBotLeft   = '╰'
	glyphBotRight  = '╯'
	tokenSeparator = 1
)

// cell is the horizontal extent of one token.
type cell struct {
	start, width int
	left, right  int // widths of the max-end and min-end regions
}

func (c cell) maxFoot(offset int) int { return c.start + c.left - 1 - offset }
func (c cell) minFoot(offset int) int { return c.start + c.width - c.right + offset }
func (c cell) middle() int {
	free := c.width - c.left - c.right
	return c.start + c.left + (free-1)/2
}

// Render draws l. The result has no trailing newline.
func Render(l graph.Layout, opts Options) string {
	cells, total := measure(l)
	if len(cells) == 0 {
		return ""
	}

	above, below := 0, 0
	for _, e := range l.Edges {
		above = max(above, e.Strata)
		below = max(below, -e.Strata)
	}

	c := &canvas{width: total}
	// Rows: above strata (outermost first), foot row, tokens, foot row,
	// below strata.
	var upper, lower [][]rune
	if above > 0 {
		upper = c.rows(above + 1)
	}
	if below > 0 {
		lower = c.rows(below + 1)
	}

	for _, e := range l.Edges {
		switch {
		case e.Strata > 0:
			drawArc(upper, cells, e, above-e.Strata, above, 1, opts.Labels)
		case e.Strata < 0:
			drawArc(lower, cells, e, -e.Strata, 0, -1, opts.Labels)
		}
	}

	var sb strings.Builder
	write := func(rows [][]rune, style func(string) string) {
		for _, r := range rows {
			sb.WriteString(style(strings.TrimRight(string(r), " ")))
			sb.WriteByte('\n')
		}
	}

	plain := func(s string) string { return s }
	aboveStyle, belowStyle, tokenStyle := plain, plain, plain
	if st := opts.Styles; st != nil {
		aboveStyle = func(s string) string { return st.Above.Render(s) }
		belowStyle = func(s string) string { return st.Below.Render(s) }
		tokenStyle = func(s string) string { return st.Tokens.Render(s) }
	}

	write(upper, aboveStyle)
	sb.WriteString(tokenStyle(tokenLine(l, cells)))
	if len(lower) > 0 {
		sb.WriteByte('\n')
		write(lower, belowStyle)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// measure sizes every token cell so the feet of all arcs at a token fit
// next to each other and the token's form fits below them.
func measure(l graph.Layout) ([]cell, int) {
	left := make([]int, len(l.Tokens))
	right := make([]int, len(l.Tokens))
	for _, e := range l.Edges {
		if e.Min == e.Max || e.Min < 0 || e.Max >= len(l.Tokens) {
			continue
		}
		left[e.Max] = max(left[e.Max], e.OffsetMax+1)
		right[e.Min] = max(right[e.Min], e.OffsetMin+1)
	}

	cells := make([]cell, len(l.Tokens))
	x := 0
	for i, t := range l.Tokens {
		w := max(lipgloss.Width(t.Form), left[i]+right[i]+1)
		cells[i] = cell{start: x, width: w, left: left[i], right: right[i]}
		x += w + tokenSeparator
	}
	return cells, x - tokenSeparator
}

func tokenLine(l graph.Layout, cells []cell) string {
	var sb strings.Builder
	for i, t := range l.Tokens {
		if i > 0 {
			sb.WriteString(strings.Repeat(" ", tokenSeparator))
		}
		pad := cells[i].width - lipgloss.Width(t.Form)
		sb.WriteString(strings.Repeat(" ", pad/2))
		sb.WriteString(t.Form)
		sb.WriteString(strings.Repeat(" ", pad-pad/2))
	}
	return strings.TrimRight(sb.String(), " ")
}

// drawArc draws e into rows. arcRow is the row of the arc's horizontal
// line and footRow the row adjacent to the tokens; dir is +1 when the
// tokens lie below rows and -1 when they lie above.
func drawArc(rows [][]rune, cells []cell, e graph.EdgeLayout, arcRow, footRow, dir int, labels bool) {
	if e.Min < 0 || e.Max >= len(cells) {
		return
	}
	head := glyphDown
	if dir < 0 {
		head = glyphUp
	}

	if e.Min == e.Max {
		x := cells[e.Min].middle()
		top := glyphSelf
		if e.Root {
			top = glyphRoot
		}
		set(rows, arcRow, x, top)
		vertical(rows, arcRow, footRow, x, dir)
		set(rows, footRow, x, head)
		return
	}

	x0 := cells[e.Min].minFoot(e.OffsetMin)
	x1 := cells[e.Max].maxFoot(e.OffsetMax)

	cornerL, cornerR := glyphTopLeft, glyphTopRight
	if dir < 0 {
		cornerL, cornerR = glyphBotLeft, glyphBotRight
	}
	for x := x0 + 1; x < x1; x++ {
		set(rows, arcRow, x, glyphH)
	}
	set(rows, arcRow, x0, cornerL)
	set(rows, arcRow, x1, cornerR)

	for _, x := range []int{x0, x1} {
		vertical(rows, arcRow, footRow, x, dir)
		set(rows, footRow, x, glyphV)
	}
	// HDir +1 points from min to max, so the dependent sits at the max end.
	if e.HDir > 0 {
		set(rows, footRow, x1, head)
	} else {
		set(rows, footRow, x0, head)
	}

	if labels && e.Label != "" {
		label := []rune(e.Label)
		span := x1 - x0 - 1
		if len(label)+2 <= span {
			at := x0 + 1 + (span-len(label))/2
			for i, r := range label {
				rows[arcRow][at+i] = r
			}
		}
	}
}

// vertical draws the stem between an arc's row and the foot row.
func vertical(rows [][]rune, arcRow, footRow, x, dir int) {
	for r := arcRow + dir; r != footRow; r += dir {
		set(rows, r, x, glyphV)
	}
}

func set(rows [][]rune, r, x int, g rune) {
	if r < 0 || r >= len(rows) || x < 0 || x >= len(rows[r]) {
		return
	}
	cur := rows[r][x]
	if (cur == glyphH && g == glyphV) || (cur == glyphV && g == glyphH) {
		g = glyphCross
	}
	rows[r][x] = g
}

type canvas struct{ width int }

func (c *canvas) rows(n int) [][]rune {
	rows := make([][]rune, n)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", c.width))
	}
	return rows
}
