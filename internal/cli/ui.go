package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives status output; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// Palette. Arcs above the tokens are teal, arcs below are amber so the two
// sides of a diagram stay apart.
var (
	colorAbove = lipgloss.Color("36")
	colorBelow = lipgloss.Color("220")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAbove)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorAbove)
	StyleWarning = lipgloss.NewStyle().Foreground(colorBelow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAbove)
	stylePath        = lipgloss.NewStyle().Foreground(colorWhite)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
)

// A statusLine is a one-line message led by a colored icon.
type statusLine struct {
	icon      string
	iconStyle lipgloss.Style
	warn      bool
}

var (
	lineSuccess = statusLine{icon: "✓", iconStyle: lipgloss.NewStyle().Foreground(colorGreen)}
	lineError   = statusLine{icon: "✗", iconStyle: lipgloss.NewStyle().Foreground(colorRed)}
	lineWarning = statusLine{icon: "!", iconStyle: StyleWarning, warn: true}
	lineInfo    = statusLine{icon: "›", iconStyle: lipgloss.NewStyle().Foreground(colorGray)}
)

func (l statusLine) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.warn {
		msg = StyleWarning.Render(msg)
	}
	fmt.Fprintln(stdout, l.iconStyle.Render(l.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { lineSuccess.print(format, args...) }
func printError(format string, args ...any)   { lineError.print(format, args...) }
func printWarning(format string, args ...any) { lineWarning.print(format, args...) }
func printInfo(format string, args ...any)    { lineInfo.print(format, args...) }

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a written file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+stylePath.Render(path))
}

// printStats summarizes a layout run, e.g.
// "12 sentences · 143 edges · 9 cached".
func printStats(sentences, edges, cached int) {
	sep := StyleDim.Render(" · ")
	cacheNote := StyleDim.Render("fresh")
	if cached > 0 {
		cacheNote = styleCached.Render(fmt.Sprintf("%d cached", cached))
	}
	fmt.Fprintln(stdout, "  "+strings.Join([]string{
		StyleDim.Render(plural(sentences, "sentence")),
		StyleDim.Render(plural(edges, "edge")),
		cacheNote,
	}, sep))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

func plural(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}
