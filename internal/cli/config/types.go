// Package config provides configuration management for the umlgen CLI.
package config

import (
	"fmt"
	"log/slog"

	"github.com/syssam/umlgen/compiler/gen"
	"github.com/syssam/umlgen/compiler/load"
)

// Default configuration values.
const (
	DefaultOutputDir    = gen.DefaultTarget
	DefaultTemplatesDir = "templates"
	DefaultExtension    = gen.DefaultExtension
	DefaultGoDir        = gen.DefaultGoDir
	DefaultLogFormat    = "text"
)

// Config holds all CLI configuration options.
type Config struct {
	OutputDir    string           `koanf:"output_dir"`
	TemplatesDir string           `koanf:"templates_dir"`
	Extension    string           `koanf:"extension"`
	Artifacts    []ArtifactConfig `koanf:"artifacts"`
	GoPackage    string           `koanf:"go_package"`
	GoDir        string           `koanf:"go_dir"`
	Header       string           `koanf:"header"`
	StrictIDs    bool             `koanf:"strict_ids"`
	Verbose      bool             `koanf:"verbose"`
	LogFormat    string           `koanf:"log_format"`
	Markers      MarkersConfig    `koanf:"markers"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// ArtifactConfig describes one generated artifact kind.
type ArtifactConfig struct {
	Name     string `koanf:"name"`
	Template string `koanf:"template"`
	Dir      string `koanf:"dir"`
	Suffix   string `koanf:"suffix"`
	Optional bool   `koanf:"optional"`
}

// MarkersConfig overrides the diagram style markers. Empty values keep the
// draw.io defaults.
type MarkersConfig struct {
	Entity   string `koanf:"entity"`
	Relation string `koanf:"relation"`
	Abstract string `koanf:"abstract"`
	Extends  string `koanf:"extends"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log_format %q: use text or json", c.LogFormat)
	}
	return nil
}

// GenOptions converts the configuration into generator options.
func (c *Config) GenOptions(logger *slog.Logger) []gen.Option {
	opts := []gen.Option{
		gen.WithTarget(c.OutputDir),
		gen.WithTemplatesDir(c.TemplatesDir),
		gen.WithExtension(c.Extension),
		gen.WithGoPackage(c.GoPackage),
		gen.WithGoDir(c.GoDir),
		gen.WithHeader(c.Header),
		gen.WithStrictIDs(c.StrictIDs),
		gen.WithConventions(load.Conventions{
			Entity:   c.Markers.Entity,
			Relation: c.Markers.Relation,
			Abstract: c.Markers.Abstract,
			Extends:  c.Markers.Extends,
		}),
		gen.WithLogger(logger),
	}
	if len(c.Artifacts) > 0 {
		artifacts := make([]gen.Artifact, 0, len(c.Artifacts))
		for _, a := range c.Artifacts {
			artifacts = append(artifacts, gen.Artifact{
				Name:     a.Name,
				Template: a.Template,
				Dir:      a.Dir,
				Suffix:   a.Suffix,
				Optional: a.Optional,
			})
		}
		opts = append(opts, gen.WithArtifacts(artifacts...))
	}
	return opts
}

// GenConfig builds the generator configuration.
func (c *Config) GenConfig(logger *slog.Logger) (*gen.Config, error) {
	return gen.NewConfig(c.GenOptions(logger)...)
}
