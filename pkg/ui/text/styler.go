package text

import (
	"strings"

	"github.com/arthur-debert/matrix/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Styler decorates the pieces of the text layout.
type Styler interface {
	Heading(s string) string
	Label(s string) string
	Muted(s string) string
	Status(status types.SourceStatus) string
	Success(s string) string
	Warning(s string) string
	Error(s string) string
}

type plainStyler struct{}

// PlainStyler returns a styler that adds no escape codes.
func PlainStyler() Styler { return plainStyler{} }

func (plainStyler) Heading(s string) string { return s }
func (plainStyler) Label(s string) string   { return s }
func (plainStyler) Muted(s string) string   { return s }
func (plainStyler) Success(s string) string { return s }
func (plainStyler) Warning(s string) string { return "warning: " + s }
func (plainStyler) Error(s string) string   { return "error: " + s }

func (plainStyler) Status(status types.SourceStatus) string {
	return "[" + string(status) + "]"
}

// statusStyles maps each source status to its badge style.
var statusStyles = map[types.SourceStatus]*pterm.Style{
	types.SourceStatusOK:       pterm.NewStyle(pterm.BgGreen, pterm.FgWhite),
	types.SourceStatusRepaired: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	types.SourceStatusSkipped:  pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	types.SourceStatusError:    pterm.NewStyle(pterm.BgRed, pterm.FgWhite),
}

type richStyler struct {
	heading lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

// RichStyler returns the terminal styler: lipgloss for headings and labels,
// pterm badges for statuses.
func RichStyler() Styler {
	return richStyler{
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (r richStyler) Heading(s string) string { return r.heading.Render(s) }
func (r richStyler) Label(s string) string   { return r.label.Render(s) }
func (r richStyler) Muted(s string) string   { return r.muted.Render(s) }

func (richStyler) Success(s string) string {
	return pterm.NewStyle(pterm.FgGreen).Sprint(s)
}

func (richStyler) Warning(s string) string {
	return pterm.NewStyle(pterm.FgYellow).Sprint("warning: " + s)
}

func (richStyler) Error(s string) string {
	return pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("error: " + s)
}

func (richStyler) Status(status types.SourceStatus) string {
	badge := " " + strings.ToUpper(string(status)) + " "
	if style, ok := statusStyles[status]; ok {
		return style.Sprint(badge)
	}
	return badge
}
