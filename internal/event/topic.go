package event

import (
	"slices"
	"strings"
)

// Topic names an event kind in dot notation, e.g. "workspace.folders.changed".
type Topic string

func (t Topic) String() string {
	return string(t)
}

// Segments splits the topic on dots.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), ".")
}

// IsValid reports whether t is non-empty and has no empty segment.
func (t Topic) IsValid() bool {
	return t != "" && !slices.Contains(t.Segments(), "")
}

// Matches reports whether pattern selects t. In a pattern "*" stands for one
// segment and "**" for any number of segments, including none.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(segs, pat []string) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}
	switch pat[0] {
	case "**":
		for i := 0; i <= len(segs); i++ {
			if match(segs[i:], pat[1:]) {
				return true
			}
		}
		return false
	case "*":
		return len(segs) > 0 && match(segs[1:], pat[1:])
	default:
		return len(segs) > 0 && segs[0] == pat[0] && match(segs[1:], pat[1:])
	}
}
