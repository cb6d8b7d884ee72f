// Package config provides the projectNameInStatusBar settings section.
//
// Settings are read through the Reader interface, which is a pure lookup:
// a missing or mistyped key falls back to its documented default and never
// fails. Store is the in-process Reader backed by a map and a change
// notifier; Loader reads the section from TOML or YAML files and Watcher
// reloads the Store whenever the file changes on disk.
//
// # Keys
//
//	source         none | folderName | commandOutput
//	command        shell command line
//	textStyle      none | uppercase | lowercase
//	align          left | right
//	alignPriority  integer ordering priority
//	template       text containing ${project-name}
//
// # Files
//
// The section can be written as a table:
//
//	[projectNameInStatusBar]
//	source = "commandOutput"
//	command = "git config --get remote.origin.url"
//
// or with VS Code style dotted keys at the top level:
//
//	projectNameInStatusBar.source: folderName
//	projectNameInStatusBar.textStyle: uppercase
package config
