package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roomml/roomml/pkg/pipeline"
)

// renderFlags holds the flags shared by render and watch.
type renderFlags struct {
	formats   string
	output    string
	meshCells int
	noCache   bool
	refresh   bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames, ", ")+" (comma-separated, default from config or svg)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVar(&f.meshCells, "mesh-cells", pipeline.DefaultMeshCells, "marching cubes resolution for the mesh format")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// renderOptions builds pipeline options from the flags and the config. Flags
// win over the config file.
func (c *CLI) renderOptions(cmd *cobra.Command, f *renderFlags) (pipeline.Options, error) {
	cfg := c.cfg().Render
	opts := pipeline.Options{
		Formats:   parseFormats(f.formats, cfg.Formats),
		MeshCells: cfg.MeshCells,
		Refresh:   f.refresh,
		Logger:    c.Logger,
	}
	if cmd.Flags().Changed("mesh-cells") {
		opts.MeshCells = f.meshCells
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render floor plans, box trees and meshes",
		Long: `Render a RoomML document.

Formats:
  svg    top-down floor plan with walls, doors, windows and furniture
  json   box tree and issues
  dot    box tree in Graphviz DOT
  tree   box tree drawn by Graphviz as SVG
  mesh   triangle meshes of floors, ceilings, walls (with openings cut out)
         and furniture, as JSON

Outputs are written next to the input (house.svg, house.mesh.json, ...) or
under --output. Documents with validation errors are not rendered.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.renderOptions(cmd, &f)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], f.output, opts, f.noCache)
		},
	}
	f.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering "+input+"...")
	spinner.Start()
	p := newProgress(c.Logger)
	res, err := c.analyze(ctx, runner, input, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if res.Blocked() {
		printReport(input, res)
		return ErrValidationFailed
	}

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}
	p.done("rendered", "source", input, "files", len(paths))

	printReport(input, res)
	for _, path := range paths {
		printFile(path)
	}
	return nil
}

// writeArtifacts writes each requested format and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, fmt.Errorf("no %s output produced", format)
		}
		path := outputPath(input, output, format, len(formats) == 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
