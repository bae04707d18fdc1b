package gen

import (
	"log/slog"

	"github.com/syssam/umlgen/compiler/load"
)

// Default configuration values.
const (
	DefaultTarget    = "output"
	DefaultExtension = ".java"
	DefaultGoDir     = "go"
)

// Config holds the global configuration of a generation run.
type Config struct {
	// Target is the root directory generated files are written under.
	Target string
	// TemplatesDir is the directory artifact templates are read from.
	TemplatesDir string
	// Extension is appended to every templated artifact file name.
	Extension string
	// Artifacts are the artifact kinds rendered per class, in order.
	// Empty means DefaultArtifacts.
	Artifacts []Artifact
	// GoPackage enables the built-in Go struct artifact when set.
	GoPackage string
	// GoDir is the directory, relative to Target, of the Go struct artifact.
	GoDir string
	// Header is an optional comment placed on top of generated Go files.
	Header string
	// StrictIDs rejects diagrams with duplicate entity ids.
	StrictIDs bool
	// Conventions override the style markers. Empty markers keep the defaults.
	Conventions load.Conventions
	// Logger receives debug and warning output. Nil discards it.
	Logger *slog.Logger
}

func (c *Config) conventions() load.Conventions {
	return c.Conventions.Merge(load.DefaultConventions())
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Config) artifacts() []Artifact {
	if len(c.Artifacts) == 0 {
		return DefaultArtifacts()
	}
	return c.Artifacts
}

func (c *Config) extension() string {
	if c.Extension == "" {
		return DefaultExtension
	}
	return c.Extension
}

func (c *Config) goDir() string {
	if c.GoDir == "" {
		return DefaultGoDir
	}
	return c.GoDir
}
