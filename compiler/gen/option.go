package gen

import (
	"errors"
	"go/token"
	"log/slog"

	"github.com/syssam/umlgen/compiler/load"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
// The directory where generated files will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithTemplatesDir sets the directory artifact templates are read from.
func WithTemplatesDir(dir string) Option {
	return func(c *Config) error {
		c.TemplatesDir = dir
		return nil
	}
}

// WithExtension sets the file extension of templated artifacts.
func WithExtension(ext string) Option {
	return func(c *Config) error {
		if ext != "" && ext[0] != '.' {
			return NewConfigError("Extension", ext, "extension must start with a dot")
		}
		c.Extension = ext
		return nil
	}
}

// WithArtifacts sets the artifact kinds rendered per class.
// Artifact names must be unique and each artifact needs a template.
func WithArtifacts(artifacts ...Artifact) Option {
	return func(c *Config) error {
		seen := make(map[string]bool, len(artifacts))
		for _, a := range artifacts {
			if a.Name == "" {
				return NewConfigError("Artifacts", nil, "artifact name cannot be empty")
			}
			if a.Template == "" {
				return NewConfigError("Artifacts", a.Name, "artifact has no template")
			}
			if seen[a.Name] {
				return NewConfigError("Artifacts", a.Name, "duplicate artifact name")
			}
			seen[a.Name] = true
		}
		c.Artifacts = append(c.Artifacts, artifacts...)
		return nil
	}
}

// WithGoPackage enables the built-in Go struct artifact in the given package.
func WithGoPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg != "" && !token.IsIdentifier(pkg) {
			return NewConfigError("GoPackage", pkg, "not a valid package name")
		}
		c.GoPackage = pkg
		return nil
	}
}

// WithGoDir sets the output directory of the Go struct artifact, relative to the target.
func WithGoDir(dir string) Option {
	return func(c *Config) error {
		c.GoDir = dir
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated Go file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithStrictIDs makes duplicate entity ids a hard failure.
func WithStrictIDs(strict bool) Option {
	return func(c *Config) error {
		c.StrictIDs = strict
		return nil
	}
}

// WithConventions overrides the style markers used to classify cells.
func WithConventions(conv load.Conventions) Option {
	return func(c *Config) error {
		c.Conventions = conv
		return nil
	}
}

// WithLogger sets the logger of the run.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Target: DefaultTarget}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
