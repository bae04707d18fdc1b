package commands

import (
	"github.com/spf13/cobra"

	"github.com/syssam/umlgen/compiler/gen"
)

// RunGenerate renders every artifact of every class of the diagram in
// args[0]. It backs the root command.
func RunGenerate(cmd *cobra.Command, args []string) error {
	c := NewCommandContext(cmd)
	g, err := c.LoadGraph(args[0])
	if err != nil {
		return err
	}

	m, err := gen.Generate(cmd.Context(), g)
	if err != nil {
		if m != nil {
			c.Logger.Debug("generation stopped", "files", m.FilesGenerated, "error", err)
		}
		return err
	}
	c.Renderer.Summary(m, g.Target)
	return nil
}
