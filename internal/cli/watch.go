package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/projectname/internal/app"
	"github.com/dshills/projectname/internal/statusbar"
)

const defaultLineWidth = 80

const tuiHint = "projectname: q to quit"

func newWatchCmd(opts *options) *cobra.Command {
	var (
		tui      bool
		barColor string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the status bar in sync until interrupted",
		Long: `Run the status bar controller against the settings file and the workspace,
re-rendering whenever either changes. Without --tui, every new status line
is printed on its own line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), opts, tui, barColor, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&tui, "tui", false, "draw the status bar on the terminal's bottom row")
	cmd.Flags().StringVar(&barColor, "bar-color", "", "background of the --tui bar, a color name or #rrggbb")

	return cmd
}

func runWatch(ctx context.Context, opts *options, tui bool, barColor string, out, errOut io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	style, err := barStyle(barColor)
	if err != nil {
		return err
	}

	logger := newLogger(opts, errOut)

	s, err := newSession(opts, logger)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.watch(); err != nil {
		return err
	}

	bar := statusbar.NewBar()
	var render func()

	if tui {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initializing terminal: %w", err)
		}
		defer screen.Fini()

		tr := statusbar.NewTerminalRenderer(screen)
		tr.SetStyle(style)
		render = func() {
			drawHint(screen)
			tr.Render(bar)
		}
		go pollScreen(screen, render, cancel)
	} else {
		width := opts.width
		if width <= 0 {
			width = defaultLineWidth
		}
		lr := statusbar.NewLineRenderer(width)
		last := ""
		render = func() {
			line := lr.Render(bar)
			if line == last {
				return
			}
			last = line
			_, _ = fmt.Fprintln(out, line)
		}
	}

	ctrl := app.NewController(app.Options{
		Config: s.store,
		Bus:    s.bus,
		Host:   s.workspace,
		Logger: logger,
		OnItem: func(it *statusbar.Item) {
			bar.Add(it)
			it.OnChange(func(statusbar.State) { render() })
		},
	})
	if err := ctrl.Activate(ctx); err != nil {
		return err
	}
	defer func() { _ = ctrl.Deactivate() }()

	ctrl.Post(render)

	<-ctx.Done()
	return nil
}

// barStyle returns the terminal bar style for a --bar-color value. An empty
// name keeps the default.
func barStyle(name string) (tcell.Style, error) {
	if name == "" {
		return statusbar.DefaultTerminalStyle, nil
	}
	c := tcell.GetColor(strings.ToLower(name))
	if c == tcell.ColorDefault && !strings.EqualFold(name, "default") {
		return tcell.StyleDefault, fmt.Errorf("unknown --bar-color %q", name)
	}
	return statusbar.DefaultTerminalStyle.Background(c), nil
}

func drawHint(screen tcell.Screen) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range tuiHint {
		screen.SetContent(i, 0, r, nil, style)
	}
}

// pollScreen handles terminal events until the screen is finalized.
func pollScreen(screen tcell.Screen, render func(), quit func()) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
			render()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				quit()
				return
			}
		}
	}
}
