package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/pipeline"
)

// layoutCommand creates the layout command for writing the box tree.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute the box tree of a document",
		Long: `Compute the box tree of a RoomML document.

Every container, room and piece of furniture gets an axis-aligned box in
house coordinates (x east, y up, z south). The tree is written as JSON to
<input>.layout.json, or to --output.

The layout is written even when validation reports errors, so a broken
document can still be inspected. The command fails in that case.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Laying out "+input+"...")
	spinner.Start()
	res, err := c.analyze(ctx, runner, input, pipeline.Options{Refresh: refresh})
	spinner.Stop()
	if err != nil {
		return err
	}

	if res.Box == nil {
		printReport(input, res)
		return ErrValidationFailed
	}

	path := outputPath(input, output, pipeline.FormatJSON, true)
	if err := layout.WriteFile(res.Box, path); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printReport(input, res)
	printFile(path)
	if res.Blocked() {
		return ErrValidationFailed
	}
	fmt.Println()
	printNextStep("Render", appName+" render "+input)
	return nil
}
