package gen

import (
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Artifact is one kind of generated file. Each class is rendered once per
// artifact, through the artifact's template.
type Artifact struct {
	// Name identifies the artifact in logs and errors.
	Name string
	// Template is the template file name, relative to the templates directory.
	Template string
	// Dir is the output subdirectory, relative to the target. Empty is the root.
	Dir string
	// Suffix is appended to the class name to build the file name.
	Suffix string
	// Optional artifacts are skipped when their template does not exist.
	Optional bool
}

// DefaultArtifacts returns the data object, its DAO interface and the DAO
// implementation.
func DefaultArtifacts() []Artifact {
	return []Artifact{
		{Name: "class", Template: "class.tmpl"},
		{Name: "dao", Template: "dao.tmpl", Dir: "dao", Suffix: "Dao"},
		{Name: "daoimpl", Template: "daoimpl.tmpl", Dir: filepath.Join("dao", "impl"), Suffix: "DaoImpl"},
	}
}

// FileName returns the path of the file generated for m, relative to the target.
func (a Artifact) FileName(m *ClassModel, ext string) string {
	return filepath.Join(a.Dir, m.Name+a.Suffix+ext)
}

// Funcs are the functions available to artifact templates.
var Funcs = template.FuncMap{
	"lowerFirst": LowerFirst,
	"upper":      UpperName,
	"lower":      strings.ToLower,
	"snake":      Snake,
	"tableName":  TableName,
	"plural":     Plural,
	"join":       strings.Join,
}

// LoadTemplate reads and parses the template of an artifact. The file is
// read in one call, so no handle outlives the load.
func LoadTemplate(dir string, a Artifact) (*template.Template, error) {
	path := filepath.Join(dir, a.Template)
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, NewTemplateError(a.Name, path, err)
	}
	t, err := template.New(a.Template).Funcs(Funcs).Parse(string(text))
	if err != nil {
		return nil, NewTemplateError(a.Name, path, err)
	}
	return t, nil
}
