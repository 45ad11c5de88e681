package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roomml/roomml/pkg/roomml"
)

// sampleCommand creates the sample command.
func (c *CLI) sampleCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print an example document",
		Long: `Print a two-room example: a living room with a door, a window, a sofa and a
coffee table, next to a kitchen with a window and an island.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				_, err := fmt.Fprint(os.Stdout, roomml.SampleJSON+"\n")
				return err
			}
			if err := os.WriteFile(output, []byte(roomml.SampleJSON+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote sample document")
			printFile(output)
			fmt.Println()
			printNextStep("Render", appName+" render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}
