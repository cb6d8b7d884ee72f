package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/projectname/internal/config"
	"github.com/dshills/projectname/internal/process"
	"github.com/dshills/projectname/internal/resolver"
	"github.com/dshills/projectname/internal/statusbar"
)

func newResolveCmd(opts *options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the status bar text once",
		Long: `Resolve the project name for the current settings and workspace and print
the formatted status bar text. Nothing is printed when the item would be
hidden.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), opts, timeout, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "limit for the source command (0 for none)")

	return cmd
}

func runResolve(ctx context.Context, opts *options, timeout time.Duration, out, errOut io.Writer) error {
	logger := newLogger(opts, errOut)

	s, err := newSession(opts, logger)
	if err != nil {
		return err
	}
	defer s.close()

	settings := s.store.Settings()
	if settings.Source == config.SourceCommandOutput && settings.Command == "" {
		_, _ = dimColor.Fprintln(errOut, "no command configured")
		return nil
	}

	item := statusbar.NewItem(settings.Align, settings.AlignPriority)
	runner := process.NewShellRunner(process.WithTimeout(timeout))
	r := resolver.New(s.store, s.workspace, runner, logger)
	presenter := statusbar.NewPresenter(s.store, r, item, nil)

	names := make(chan resolver.Name, 1)
	r.Resolve(ctx, func(n resolver.Name) { names <- n })

	select {
	case n := <-names:
		presenter.Apply(n)
	case <-ctx.Done():
		return ctx.Err()
	}

	return printItem(out, opts.width, item)
}

func printItem(out io.Writer, width int, item *statusbar.Item) error {
	if width > 0 {
		line := statusbar.NewLineRenderer(width).Render(statusbar.NewBar(item))
		_, err := fmt.Fprintln(out, line)
		return err
	}
	if !item.Visible() {
		return nil
	}
	_, err := fmt.Fprintln(out, item.Text())
	return err
}
