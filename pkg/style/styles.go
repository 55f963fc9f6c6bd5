package style

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is the set of styles bound to one output. Styles carry the output's
// color profile, so a theme for a pipe renders plain text.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Path     lipgloss.Style
	Code     lipgloss.Style
	Link     lipgloss.Style
	Backup   lipgloss.Style
	Script   lipgloss.Style
	Box      lipgloss.Style
}

// NewTheme builds a theme for w. color false forces the ASCII profile.
func NewTheme(w io.Writer, color bool) *Theme {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Theme{
		Title:    r.NewStyle().Foreground(HeadingColor).Bold(true),
		Subtitle: r.NewStyle().Foreground(HeadingColor).Bold(true),
		Normal:   r.NewStyle().Foreground(TextColor),
		Muted:    r.NewStyle().Foreground(MutedColor),
		Success:  r.NewStyle().Foreground(SuccessColor).Bold(true),
		Error:    r.NewStyle().Foreground(ErrorColor).Bold(true),
		Warning:  r.NewStyle().Foreground(WarningColor).Bold(true),
		Info:     r.NewStyle().Foreground(InfoColor),
		Path:     r.NewStyle().Foreground(SecondaryColor).Italic(true),
		Code:     r.NewStyle().Foreground(PrimaryColor),
		Link:     r.NewStyle().Foreground(LinkColor).Bold(true),
		Backup:   r.NewStyle().Foreground(BackupColor).Bold(true),
		Script:   r.NewStyle().Foreground(ScriptColor).Bold(true),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1),
	}
}

// Indicator glyphs
const (
	SuccessGlyph = "✓"
	ErrorGlyph   = "✗"
	WarningGlyph = "!"
	InfoGlyph    = "•"
	PendingGlyph = "○"
)

// Indent prefixes every line of s with two spaces per level.
func Indent(s string, level int) string {
	if level <= 0 {
		return s
	}
	pad := strings.Repeat("  ", level)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
