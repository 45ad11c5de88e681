package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roomml/roomml/pkg/roomml"
)

// fmtCommand creates the fmt command.
func (c *CLI) fmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a document in canonical form",
		Long: `Rewrite a RoomML document in canonical form.

Comments and trailing commas are dropped, fields are written in a fixed
order, and nodes without an id get their generated one (room-1, furniture-2, ...).
YAML documents stay YAML.

The result goes to stdout unless --write is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFmt(args[0], write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")

	return cmd
}

func (c *CLI) runFmt(input string, write bool) error {
	source, err := readSource(input)
	if err != nil {
		return err
	}
	yaml := roomml.IsYAMLPath(input)

	var root *roomml.Node
	if yaml {
		root, err = roomml.ParseYAML(source)
	} else {
		root, err = roomml.Parse(source)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	var out []byte
	if yaml {
		out, err = roomml.MarshalYAML(root)
	} else {
		out, err = roomml.Marshal(root)
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}

	if !write || input == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(input, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", input, err)
	}
	c.Logger.Info("formatted", "file", input)
	return nil
}
