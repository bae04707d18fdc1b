package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/umlgen/internal/cli/output"
)

// InspectOptions holds options for the inspect command.
type InspectOptions struct {
	Format string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect <diagram>",
		Short: "Show the class models of a diagram",
		Long: `Parse a diagram and print the class models templates receive,
without writing any file.`,
		Example: `  # Table of classes
  umlgen inspect model.drawio

  # Models as JSON
  umlgen inspect model.drawio --format json`,
		Args: DiagramArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", string(output.FormatText), "Output format: text, json, yaml, msgpack")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runInspect(cmd *cobra.Command, path string, opts *InspectOptions) error {
	format, err := output.ParseFormat(opts.Format)
	if err != nil {
		return &UsageError{Message: err.Error()}
	}

	c := NewCommandContext(cmd)
	g, err := c.LoadGraph(path)
	if err != nil {
		return err
	}
	if n := len(g.Unresolved()); n > 0 {
		c.Renderer.Warn(fmt.Sprintf("%d relations have unresolved endpoints and are ignored", n))
	}
	return c.Renderer.Models(g.Models(), format)
}
