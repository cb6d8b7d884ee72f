package config

import "fmt"

// Section is the configuration namespace read by this module.
const Section = "projectNameInStatusBar"

// Setting keys within Section.
const (
	KeySource        = "source"
	KeyCommand       = "command"
	KeyTextStyle     = "textStyle"
	KeyAlign         = "align"
	KeyAlignPriority = "alignPriority"
	KeyTemplate      = "template"
)

// Placeholder is substituted with the project name in the template.
const Placeholder = "${project-name}"

// Source selects where the project name comes from.
type Source int

const (
	// SourceNone disables the status bar item.
	SourceNone Source = iota
	// SourceFolderName derives the name from workspace folders.
	SourceFolderName
	// SourceCommandOutput runs the configured command.
	SourceCommandOutput
)

// String returns the configuration spelling of the source.
func (s Source) String() string {
	switch s {
	case SourceNone:
		return "none"
	case SourceFolderName:
		return "folderName"
	case SourceCommandOutput:
		return "commandOutput"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// ParseSource maps a configuration value to a Source.
// Unrecognized values are SourceNone.
func ParseSource(s string) Source {
	switch s {
	case "folderName":
		return SourceFolderName
	case "commandOutput":
		return SourceCommandOutput
	default:
		return SourceNone
	}
}

// TextStyle is the case transform applied to the name.
type TextStyle int

const (
	// TextStyleNone leaves the name unchanged.
	TextStyleNone TextStyle = iota
	// TextStyleUppercase upper-cases the name.
	TextStyleUppercase
	// TextStyleLowercase lower-cases the name.
	TextStyleLowercase
)

// String returns the configuration spelling of the text style.
func (t TextStyle) String() string {
	switch t {
	case TextStyleNone:
		return "none"
	case TextStyleUppercase:
		return "uppercase"
	case TextStyleLowercase:
		return "lowercase"
	default:
		return fmt.Sprintf("TextStyle(%d)", int(t))
	}
}

// ParseTextStyle maps a configuration value to a TextStyle.
// Unrecognized values are TextStyleNone.
func ParseTextStyle(s string) TextStyle {
	switch s {
	case "uppercase":
		return TextStyleUppercase
	case "lowercase":
		return TextStyleLowercase
	default:
		return TextStyleNone
	}
}

// Align is the side of the status bar the item is placed on.
type Align int

const (
	// AlignLeft places the item on the left side.
	AlignLeft Align = iota
	// AlignRight places the item on the right side.
	AlignRight
)

// String returns the configuration spelling of the alignment.
func (a Align) String() string {
	if a == AlignLeft {
		return "left"
	}
	return "right"
}

// ParseAlign maps a configuration value to an Align.
// Unrecognized values are AlignRight.
func ParseAlign(s string) Align {
	if s == "left" {
		return AlignLeft
	}
	return AlignRight
}

// Settings is an immutable snapshot of the section.
type Settings struct {
	Source        Source
	Command       string
	TextStyle     TextStyle
	Align         Align
	AlignPriority int
	Template      string
}

// Defaults used when a key is absent.
const (
	DefaultSource        = "folderName"
	DefaultCommand       = ""
	DefaultTextStyle     = "none"
	DefaultAlign         = "right"
	DefaultAlignPriority = 0
	DefaultTemplate      = Placeholder
)

// DefaultSettings returns the settings produced by an empty section.
func DefaultSettings() Settings {
	return Read(nil)
}

// Read takes a snapshot of every setting from r.
func Read(r Reader) Settings {
	return Settings{
		Source:        ReadSource(r),
		Command:       Get(r, KeyCommand, DefaultCommand),
		TextStyle:     ParseTextStyle(Get(r, KeyTextStyle, DefaultTextStyle)),
		Align:         ParseAlign(Get(r, KeyAlign, DefaultAlign)),
		AlignPriority: Get(r, KeyAlignPriority, DefaultAlignPriority),
		Template:      Get(r, KeyTemplate, DefaultTemplate),
	}
}

// ReadSource reads only the source setting.
func ReadSource(r Reader) Source {
	return ParseSource(Get(r, KeySource, DefaultSource))
}
