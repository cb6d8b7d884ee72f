package statusbar

import (
	"sort"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/projectname/internal/config"
)

// Segment is a visible item placed on the row.
type Segment struct {
	// X is the starting column.
	X    int
	Text string
}

// Bar is an ordered set of items sharing one row.
type Bar struct {
	mu    sync.Mutex
	items []*Item
}

// NewBar creates an empty bar.
func NewBar(items ...*Item) *Bar {
	return &Bar{items: items}
}

// Add appends it to the bar.
func (b *Bar) Add(it *Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, it)
}

// Remove drops it from the bar.
func (b *Bar) Remove(it *Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, cur := range b.items {
		if cur == it {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}

// Len returns the number of items.
func (b *Bar) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Layout places the visible, non-empty items on a row of the given width.
//
// Left items start at column 0 and right items end at the last column. Within
// a side, higher priority items come first (further left), ties keep
// insertion order. Adjacent items are separated by one space. Right items
// are placed after left ones and overlap them when the row is too narrow.
func (b *Bar) Layout(width int) []Segment {
	b.mu.Lock()
	states := make([]State, 0, len(b.items))
	for _, it := range b.items {
		states = append(states, it.State())
	}
	b.mu.Unlock()

	var left, right []State
	for _, s := range states {
		if !s.Visible || s.Text == "" {
			continue
		}
		if s.Align == config.AlignLeft {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	byPriority := func(group []State) {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Priority > group[j].Priority })
	}
	byPriority(left)
	byPriority(right)

	segments := make([]Segment, 0, len(left)+len(right))

	x := 0
	for _, s := range left {
		segments = append(segments, Segment{X: x, Text: s.Text})
		x += runewidth.StringWidth(s.Text) + 1
	}

	total := 0
	for i, s := range right {
		if i > 0 {
			total++
		}
		total += runewidth.StringWidth(s.Text)
	}
	x = width - total
	if x < 0 {
		x = 0
	}
	for _, s := range right {
		segments = append(segments, Segment{X: x, Text: s.Text})
		x += runewidth.StringWidth(s.Text) + 1
	}

	return segments
}

// Line renders the layout as plain text exactly width columns wide.
func (b *Bar) Line(width int) string {
	if width <= 0 {
		return ""
	}
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}
	for _, seg := range b.Layout(width) {
		x := seg.X
		for _, r := range seg.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if x+w > width {
				break
			}
			cells[x] = string(r)
			for i := 1; i < w; i++ {
				cells[x+i] = ""
			}
			x += w
		}
	}
	return strings.Join(cells, "")
}
