// Package output renders command results for terminals and scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/umlgen/compiler/gen"
)

// Format selects how class models are printed.
type Format string

// Supported formats.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Formats lists every supported format, for flag completion.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatMsgpack)}
}

// ParseFormat validates a format name. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use one of %s", s, strings.Join(Formats(), ", "))
	}
}

// Styles holds the lipgloss styles of a renderer.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    r.NewStyle().Bold(true),
	}
}

// Renderer writes styled output. Colors are only emitted when the output
// writer is a terminal.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	styles *Styles
}

// NewRenderer creates a renderer writing to out and errOut.
func NewRenderer(out, errOut io.Writer) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Styles returns the renderer styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Warn writes a warning line to the error output.
func (r *Renderer) Warn(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: "+msg))
}

// Summary prints the result of a generation run.
func (r *Renderer) Summary(m *gen.WriterMetrics, target string) {
	s := r.styles
	r.Println(s.Success.Render(fmt.Sprintf("✓ Generated %d files (%s) in %s", m.FilesGenerated, humanize.IBytes(uint64(m.TotalBytes)), target)))
	for _, name := range m.Skipped {
		r.Println(s.Muted.Render("  skipped " + name + ": template not found"))
	}
}

// Models prints class models in the given format.
func (r *Renderer) Models(models []*gen.ClassModel, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(models); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		data, err := msgpack.Marshal(models)
		if err != nil {
			return err
		}
		_, err = r.out.Write(data)
		return err
	default:
		r.modelsTable(models)
		return nil
	}
}

func (r *Renderer) modelsTable(models []*gen.ClassModel) {
	if len(models) == 0 {
		r.Println(r.styles.Muted.Render("(no classes)"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Class", "Table", "Abstract", "Base", "Extends", "Attributes"})
	for _, m := range models {
		attrs := make([]string, 0, len(m.Attributes))
		for _, a := range m.Attributes {
			attrs = append(attrs, a.ClassName)
		}
		t.AppendRow(table.Row{m.Name, m.TableName, yesNo(m.IsAbstract), yesNo(m.IsBase), m.ExtendsName, strings.Join(attrs, ", ")})
	}
	t.Render()
	r.Printf("(%d classes)\n", len(models))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
