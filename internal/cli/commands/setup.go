// Package commands implements the umlgen subcommands.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/syssam/umlgen/compiler/gen"
	"github.com/syssam/umlgen/compiler/load"
	"github.com/syssam/umlgen/internal/cli/config"
	"github.com/syssam/umlgen/internal/cli/output"
)

// UsageError reports a command invoked with the wrong arguments or flags.
// The CLI exits with status 2 for it.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// NewUsageError creates a UsageError.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// IsUsageError reports whether err is or wraps a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// DiagramArg validates that exactly one diagram path was given.
func DiagramArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return NewUsageError("expected exactly one diagram file, got %d arguments", len(args))
	}
	return nil
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:      config.FromContext(cmd.Context()),
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}
}

// LoadGraph parses the diagram at path and builds its class graph.
func (c *CommandContext) LoadGraph(path string) (*gen.Graph, error) {
	genCfg, err := c.Cfg.GenConfig(c.Logger)
	if err != nil {
		return nil, err
	}
	d, err := load.ParseFile(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("diagram parsed", "path", path, "cells", len(d.Nodes))
	return gen.NewGraph(genCfg, d)
}
