// Package cli implements the projectname command line.
package cli

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/projectname/internal/logging"
)

// options holds the flags shared by every command.
type options struct {
	configPath    string
	workspacePath string
	activePath    string
	logLevel      string
	overrides     []string
	width         int
}

var (
	errorColor = color.New(color.FgRed, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// NewRootCmd builds the projectname command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "projectname",
		Version: version,
		Short:   "Show a derived project name in a status bar",
		Long: `projectname derives a project name from workspace folders or from the
output of a shell command, and renders it as a status bar item.

Settings live in the projectNameInStatusBar section of a TOML or YAML file:
source, command, textStyle, align, alignPriority and template.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "settings file (.toml, .yaml or .yml)")
	flags.StringVarP(&opts.workspacePath, "workspace", "w", ".", "workspace folder or .code-workspace file")
	flags.StringVar(&opts.activePath, "active", "", "path of the focused document")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	flags.StringArrayVar(&opts.overrides, "set", nil, "override a setting after the file is loaded, as key=value (repeatable)")
	flags.IntVar(&opts.width, "width", 0, "render an aligned status line this many columns wide")

	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newWatchCmd(opts))

	return root
}

// PrintError writes err to w in the error color.
func PrintError(w io.Writer, err error) {
	_, _ = errorColor.Fprintf(w, "error: %v\n", err)
}

func newLogger(opts *options, w io.Writer) *logging.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(opts.logLevel)
	cfg.Output = w
	cfg.Colorize = !color.NoColor
	return logging.New(cfg)
}
