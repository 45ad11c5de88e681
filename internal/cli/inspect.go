package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/roomml/roomml/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the issues and boxes of a document",
		Long: `Open an interactive browser over a document's validation issues and its
laid-out box tree.

With --plain the box tree is printed as indented text instead, which is handy
for scripts and for diffing layouts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], plain, noCache)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the box tree instead of opening the browser")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, plain, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := c.analyze(ctx, runner, input, pipeline.Options{})
	if err != nil {
		return err
	}

	if plain {
		printReport(input, res)
		printBoxTree(res)
		return nil
	}

	p := tea.NewProgram(NewInspectModel(input, res), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}
