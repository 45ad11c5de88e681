package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperr "github.com/roomml/roomml/pkg/errors"
	"github.com/roomml/roomml/pkg/pipeline"
	"github.com/roomml/roomml/pkg/watch"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		f        renderFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render a document whenever it changes",
		Long: `Render a RoomML document, then render it again every time the file is
saved. Issues are printed after each run; a document with errors is reported
but keeps being watched.

Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.renderOptions(cmd, &f)
			if err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], f.output, opts, f.noCache, debounce)
		},
	}
	f.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "wait this long after a change before rendering")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input, output string, opts pipeline.Options, noCache bool, debounce time.Duration) error {
	if input == "-" {
		return apperr.New(apperr.ErrCodeInvalidInput, "cannot watch stdin")
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	printInfo("Watching %s (Ctrl+C to stop)", input)
	return watch.File(ctx, input, debounce, func(ctx context.Context) error {
		return c.renderOnce(ctx, runner, input, output, opts)
	})
}

// renderOnce runs one watch iteration. Document problems are printed and
// swallowed; only cancellation ends the watch.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) error {
	res, err := c.analyze(ctx, runner, input, opts)
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case err != nil:
		c.Logger.Error("render failed", "source", input, "error", err)
		return nil
	}

	printReport(input, res)
	if res.Blocked() {
		return nil
	}
	paths, err := writeArtifacts(res.Artifacts, opts.Formats, input, output)
	if err != nil {
		c.Logger.Error("write failed", "error", err)
		return nil
	}
	for _, path := range paths {
		printFile(path)
	}
	return nil
}
