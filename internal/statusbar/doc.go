// Package statusbar owns the status bar item that shows the project name.
//
// An Item is the widget: text, visibility, and the alignment and priority it
// was created with. The Presenter turns a resolved name into widget state by
// applying the configured text style and template. Bar collects items and
// lays them out on a single row; TerminalRenderer draws that row on a tcell
// screen and LineRenderer produces it as a styled string.
package statusbar
