package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roomml/roomml/pkg/pipeline"
	"github.com/roomml/roomml/pkg/scene/sink"
	"github.com/roomml/roomml/pkg/validate"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		jsonOut    bool
		errorsOnly bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check documents for errors and warnings",
		Long: `Check one or more RoomML documents.

Each document is parsed, validated and laid out; its issues are printed with
the path of the offending node. The command fails when any document has
errors. Warnings alone do not fail it.

Use "-" to read a document from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args, jsonOut, errorsOnly, noCache)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print issues as JSON")
	cmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "hide warnings")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, inputs []string, jsonOut, errorsOnly, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	failed := false
	for _, input := range inputs {
		res, err := c.analyze(ctx, runner, input, pipeline.Options{})
		if err != nil {
			return err
		}
		failed = failed || res.Blocked()
		if errorsOnly {
			res = withErrorsOnly(res)
		}
		if jsonOut {
			data, err := sink.RenderJSON(nil, sink.WithJSONSource(input), sink.WithJSONIssues(res.Issues))
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(data))
		} else {
			printReport(input, res)
		}
	}
	if failed {
		return ErrValidationFailed
	}
	return nil
}

// withErrorsOnly returns a shallow copy of res whose issues are only the
// errors.
func withErrorsOnly(res *pipeline.Result) *pipeline.Result {
	out := *res
	out.Issues = validate.Filter(res.Issues, validate.LevelError)
	out.Stats.Warnings = 0
	return &out
}

// analyze reads input and runs it through runner with opts.
func (c *CLI) analyze(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*pipeline.Result, error) {
	source, err := readSource(input)
	if err != nil {
		return nil, err
	}
	opts.Source = input
	opts.Logger = c.Logger
	return runner.Execute(ctx, source, opts)
}
