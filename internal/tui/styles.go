package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette shared by the styled report and the interactive form.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorHighlight = lipgloss.Color("212")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorMuted     = lipgloss.Color("241")
	ColorSpinner   = lipgloss.Color("205")
)

// Status icons.
const (
	IconCheck      = "✓"
	IconCross      = "✗"
	IconArrowRight = "→"
)

//nolint:gochecknoglobals // Immutable style definitions.
var (
	// TitleStyle renders the report title.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// SectionStyle renders section headings.
	SectionStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	// LabelStyle renders metric labels.
	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	// ValueStyle renders metric values.
	ValueStyle = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	// OKStyle renders good news.
	OKStyle = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)

	// ErrorStyle renders failures.
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)

	// HighlightStyle renders edited inputs.
	HighlightStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	// SpinnerStyle renders progress messages.
	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorSpinner).Bold(true)

	// MutedStyle renders help and hints.
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// BoxStyle frames the styled report.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// TableHeaderStyle renders table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true).
				Bold(true)

	// TableSelectedStyle renders the selected table row.
	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(false)
)

// OutputMode is how a report is presented on the terminal.
type OutputMode int

const (
	// OutputModePlain writes unstyled text, for pipes, files and CI logs.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes a lipgloss-styled report.
	OutputModeStyled
	// OutputModeInteractive runs the bubbletea form.
	OutputModeInteractive
)

// DetectOutputMode picks the output mode for stdout. Plain output is used when
// plain is requested, NO_COLOR is set, TERM is "dumb" or stdout is not a
// terminal. Interactive mode additionally requires a terminal on stdin.
func DetectOutputMode(plain, noColor, interactive bool) OutputMode {
	if plain || noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !isTerminal(os.Stdout) {
		return OutputModePlain
	}
	if interactive && isTerminal(os.Stdin) {
		return OutputModeInteractive
	}
	return OutputModeStyled
}

// TerminalWidth returns the width of stdout, or fallback when it is unknown.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
