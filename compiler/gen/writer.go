package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"golang.org/x/tools/imports"
)

// Emitter persists generated files. Names are relative to the emitter's root.
type Emitter interface {
	Emit(name string, data []byte) error
}

// DirEmitter writes files under Root, creating directories on demand.
type DirEmitter struct {
	Root string
}

// Emit writes data to Root/name. Names that are absolute or climb out of
// Root are rejected.
func (d DirEmitter) Emit(name string, data []byte) (err error) {
	if !filepath.IsLocal(name) {
		return fmt.Errorf("%s: %w", name, ErrPathEscape)
	}
	path := filepath.Join(d.Root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", name, cerr)
		}
	}()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// TemplateWriter renders the class models of a graph through the artifact
// templates and hands the results to an Emitter. Artifacts are processed in
// order, one template at a time.
type TemplateWriter struct {
	graph   *Graph
	emitter Emitter
	log     *slog.Logger

	metrics *WriterMetrics
}

// WriterMetrics tracks generation output.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	// Files are the generated file names, in generation order.
	Files []string
	// Skipped are the optional artifacts whose template was missing.
	Skipped []string
}

// NewTemplateWriter creates a new template-based writer.
func NewTemplateWriter(g *Graph, e Emitter) *TemplateWriter {
	return &TemplateWriter{
		graph:   g,
		emitter: e,
		log:     g.logger(),
		metrics: &WriterMetrics{},
	}
}

// Metrics returns the generation metrics.
func (w *TemplateWriter) Metrics() *WriterMetrics {
	return w.metrics
}

// GenerateAll renders every artifact for every class, followed by the Go
// struct artifact when a Go package is configured. A failing artifact stops
// the run; files of earlier artifacts are left in place.
func (w *TemplateWriter) GenerateAll(ctx context.Context) error {
	models := w.graph.Models()
	for _, a := range w.graph.artifacts() {
		if err := w.GenerateArtifact(ctx, a, models); err != nil {
			return err
		}
	}
	if w.graph.GoPackage != "" {
		return w.GenerateStructs(ctx, models)
	}
	return nil
}

// GenerateArtifact renders one artifact for the given models.
func (w *TemplateWriter) GenerateArtifact(ctx context.Context, a Artifact, models []*ClassModel) error {
	tmpl, err := LoadTemplate(w.graph.TemplatesDir, a)
	if err != nil {
		if a.Optional && errors.Is(err, fs.ErrNotExist) {
			w.log.Warn("template not found, skipping artifact",
				slog.String("artifact", a.Name),
				slog.String("template", a.Template),
			)
			w.metrics.Skipped = append(w.metrics.Skipped, a.Name)
			return nil
		}
		return err
	}
	ext := w.graph.extension()
	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.generateFile(tmpl, a.FileName(m, ext), m); err != nil {
			return err
		}
	}
	return nil
}

// generateFile renders a single file.
func (w *TemplateWriter) generateFile(tmpl *template.Template, name string, m *ClassModel) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		return NewGenerationError("render", name, fmt.Sprintf("execute template %q", tmpl.Name()), err)
	}
	out := buf.Bytes()
	if filepath.Ext(name) == ".go" {
		formatted, err := w.format(name, out)
		if err != nil {
			return err
		}
		out = formatted
	}
	return w.emit(name, out)
}

// format runs goimports over generated Go source. On failure the unformatted
// source is written next to the file for debugging.
func (w *TemplateWriter) format(name string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(name, src, nil)
	if err != nil {
		debug := name + ".error"
		// Errors intentionally ignored as we're already in an error state.
		_ = w.emitter.Emit(debug, src)
		return nil, NewGenerationError("format", name, "unformatted source written to "+debug, err)
	}
	return formatted, nil
}

func (w *TemplateWriter) emit(name string, data []byte) error {
	if err := w.emitter.Emit(name, data); err != nil {
		return NewGenerationError("write", name, "", err)
	}
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(data))
	w.metrics.Files = append(w.metrics.Files, name)
	w.log.Debug("file generated", slog.String("file", name), slog.Int("bytes", len(data)))
	return nil
}

// Generate is the convenience function to generate all artifacts of a graph
// into its configured target directory.
func Generate(ctx context.Context, g *Graph) (*WriterMetrics, error) {
	if g.Config == nil || g.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	w := NewTemplateWriter(g, DirEmitter{Root: g.Target})
	if err := w.GenerateAll(ctx); err != nil {
		return w.Metrics(), err
	}
	return w.Metrics(), nil
}
