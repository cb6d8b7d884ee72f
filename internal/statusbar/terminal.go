package statusbar

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DefaultTerminalStyle is the bar style used by NewTerminalRenderer.
var DefaultTerminalStyle = tcell.StyleDefault.
	Background(tcell.ColorGray).
	Foreground(tcell.ColorWhite)

// TerminalRenderer draws a Bar on the bottom row of a tcell screen.
type TerminalRenderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	style  tcell.Style
}

// NewTerminalRenderer creates a renderer for an initialized screen.
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, style: DefaultTerminalStyle}
}

// SetStyle changes the bar style.
func (r *TerminalRenderer) SetStyle(style tcell.Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.style = style
}

// Render clears the bottom row, draws the bar on it and shows the screen.
func (r *TerminalRenderer) Render(bar *Bar) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	row := height - 1

	for x := 0; x < width; x++ {
		r.screen.SetContent(x, row, ' ', nil, r.style)
	}

	for _, seg := range bar.Layout(width) {
		x := seg.X
		for _, ch := range seg.Text {
			w := runewidth.RuneWidth(ch)
			if w == 0 {
				continue
			}
			if x+w > width {
				break
			}
			r.screen.SetContent(x, row, ch, nil, r.style)
			x += w
		}
	}

	r.screen.Show()
}
