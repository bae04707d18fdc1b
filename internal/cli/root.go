// Package cli provides the command-line interface for umlgen.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/umlgen/internal/cli/commands"
	"github.com/syssam/umlgen/internal/cli/config"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "umlgen <diagram>",
		Short: "Generate class code from draw.io UML diagrams",
		Long: `umlgen reads a draw.io class diagram and renders one file per class
and artifact kind (class, dao, daoimpl by default) from text templates.

Entities are cells styled as UML entities. Edges between them are either
attributes (solid) or inheritance (dashed).`,
		Example: `  # Generate into ./output using ./templates
  umlgen model.drawio

  # Custom directories
  umlgen model.drawio -o build/src -T tpl`,
		Version:           Version,
		Args:              commands.DiagramArg,
		RunE:              commands.RunGenerate,
		PersistentPreRunE: loadConfig(&cfgFile),
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &commands.UsageError{Message: err.Error()}
	})

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./umlgen.yaml)")
	pf.StringP("output-dir", "o", "", "Directory generated files are written to (default: output)")
	pf.StringP("templates-dir", "T", "", "Directory artifact templates are read from (default: templates)")
	pf.String("extension", "", "Extension of templated files (default: .java)")
	pf.String("go-package", "", "Also generate Go structs in this package")
	pf.Bool("strict-ids", false, "Fail on duplicate entity ids")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.String("log-format", "", "Log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

func loadConfig(cfgFile *string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		// Skip config loading for help and completion commands
		switch cmd.Name() {
		case "help", "completion", "__complete", "version":
			return nil
		}

		cfg, err := config.LoadConfig(*cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger := config.NewLogger(cmd.ErrOrStderr(), cfg)
		if cfg.File != "" {
			logger.Debug("using config file", "path", cfg.File)
		}

		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(config.WithLogger(ctx, logger))
		return nil
	}
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(rootCmd *cobra.Command, args []string, stderr io.Writer) error {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		if commands.IsUsageError(err) {
			_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", rootCmd.Name())
		}
		return err
	}
	return nil
}
