package statusbar

import (
	"strings"

	"github.com/dshills/projectname/internal/config"
)

// ApplyTextStyle transforms name according to style.
func ApplyTextStyle(name string, style config.TextStyle) string {
	switch style {
	case config.TextStyleUppercase:
		return strings.ToUpper(name)
	case config.TextStyleLowercase:
		return strings.ToLower(name)
	default:
		return name
	}
}

// ApplyTemplate replaces the first occurrence of the placeholder in template
// with name. A template without the placeholder is returned unchanged.
func ApplyTemplate(template, name string) string {
	return strings.Replace(template, config.Placeholder, name, 1)
}

// Format styles name and substitutes it into the template from s.
func Format(s config.Settings, name string) string {
	return ApplyTemplate(s.Template, ApplyTextStyle(name, s.TextStyle))
}
