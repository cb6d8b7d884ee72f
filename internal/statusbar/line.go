package statusbar

import (
	"github.com/charmbracelet/lipgloss"
)

// DefaultLineStyle is the style used by NewLineRenderer.
var DefaultLineStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("15")).
	Background(lipgloss.Color("8"))

// LineRenderer renders a Bar as a single styled line, for output that is not
// a full-screen terminal.
type LineRenderer struct {
	width int
	style lipgloss.Style
}

// NewLineRenderer creates a renderer producing lines width columns wide.
func NewLineRenderer(width int) *LineRenderer {
	return &LineRenderer{width: width, style: DefaultLineStyle}
}

// WithStyle returns a copy of r using style.
func (r *LineRenderer) WithStyle(style lipgloss.Style) *LineRenderer {
	return &LineRenderer{width: r.width, style: style}
}

// Render returns the styled line for bar.
func (r *LineRenderer) Render(bar *Bar) string {
	return r.style.Inline(true).Render(bar.Line(r.width))
}
