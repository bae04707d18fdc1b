package gen

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
)

// GenerateStructs writes one Go file per class into the Go directory of the
// target. Each file declares a struct embedding its base class and holding a
// pointer field per attribute, plus the table name constant. Two classes that
// map to the same file or Go type name fail the run.
func (w *TemplateWriter) GenerateStructs(ctx context.Context, models []*ClassModel) error {
	var (
		files = make(map[string]string, len(models))
		types = make(map[string]string, len(models))
	)
	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Join(w.graph.goDir(), Snake(m.Name)+".go")
		if prev, ok := files[name]; ok {
			return NewGenerationError("write", name, fmt.Sprintf("classes %q and %q map to the same file", prev, m.Name), nil)
		}
		typeName := goName(m.Name)
		if prev, ok := types[typeName]; ok {
			return NewGenerationError("write", name, fmt.Sprintf("classes %q and %q map to the same Go type %s", prev, m.Name, typeName), nil)
		}
		files[name], types[typeName] = m.Name, m.Name
		var buf bytes.Buffer
		if err := w.structFile(m).Render(&buf); err != nil {
			return NewGenerationError("render", name, "render go struct", err)
		}
		if err := w.emit(name, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (w *TemplateWriter) structFile(m *ClassModel) *jen.File {
	f := jen.NewFile(w.graph.GoPackage)
	if w.graph.Header != "" {
		f.HeaderComment(w.graph.Header)
	}
	typeName := goName(m.Name)

	var (
		fields []jen.Code
		used   = make(map[string]int)
	)
	if m.HasExtends() {
		base := goName(m.ExtendsName)
		used[base]++
		fields = append(fields, jen.Id(base))
	}
	for _, a := range m.Attributes {
		typ := goName(a.ClassName)
		field := typ
		if n := used[typ]; n > 0 {
			field += strconv.Itoa(n + 1)
		}
		used[typ]++
		fields = append(fields, jen.Id(field).Op("*").Id(typ).Tag(map[string]string{
			"json": Snake(a.ClassName) + ",omitempty",
		}))
	}

	doc := fmt.Sprintf("%s is generated from the %s class", typeName, m.Name)
	switch {
	case m.IsAbstract && m.IsBase:
		doc += ". It is abstract and meant to be embedded by its subclasses."
	case m.IsAbstract:
		doc += ". It is abstract."
	case m.IsBase:
		doc += ". It is embedded by its subclasses."
	default:
		doc += "."
	}
	f.Comment(doc)
	f.Type().Id(typeName).Struct(fields...)
	f.Line()
	f.Commentf("%sTable holds the table name of %s.", typeName, typeName)
	f.Const().Id(typeName + "Table").Op("=").Lit(m.TableName)
	return f
}

// goName turns a class name into an exported Go identifier.
func goName(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	name := b.String()
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		name = "T" + name
	}
	return name
}
