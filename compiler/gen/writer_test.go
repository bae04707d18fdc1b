package gen

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/umlgen/compiler/load"
)

const testTemplates = "testdata/templates"

func zooGraph(t *testing.T, c *Config) *Graph {
	t.Helper()
	if c.Logger == nil {
		c.Logger = newTestLogger(t)
	}
	g, err := NewGraph(c, diagram(
		entity("1", "Animal", abstractStyle),
		entity("2", "Dog", entityStyle),
		entity("3", "Bone", entityStyle),
		edge("4", "2", "1", extendsStyle),
		edge("5", "2", "3", pointsStyle),
	))
	require.NoError(t, err)
	return g
}

func TestTemplateWriter(t *testing.T) {
	t.Run("renders every artifact for every class", func(t *testing.T) {
		g := zooGraph(t, &Config{TemplatesDir: testTemplates})
		mem := newMemEmitter()
		w := NewTemplateWriter(g, mem)
		require.NoError(t, w.GenerateAll(context.Background()))

		assert.Equal(t, []string{
			"Animal.java", "Dog.java", "Bone.java",
			filepath.Join("dao", "AnimalDao.java"),
			filepath.Join("dao", "DogDao.java"),
			filepath.Join("dao", "BoneDao.java"),
			filepath.Join("dao", "impl", "AnimalDaoImpl.java"),
			filepath.Join("dao", "impl", "DogDaoImpl.java"),
			filepath.Join("dao", "impl", "BoneDaoImpl.java"),
		}, mem.order)

		assert.Equal(t, "class Dog extends Animal table=DOG abstract=false base=false\n  Bone bone BONE\n", mem.files["Dog.java"])
		assert.Equal(t, "class Animal table=ANIMAL abstract=true base=true\n", mem.files["Animal.java"])
		assert.Equal(t, "interface BoneDao for bone\n", mem.files[filepath.Join("dao", "BoneDao.java")])
		assert.Equal(t, "impl DogDaoImpl of DogDao on DOG\n", mem.files[filepath.Join("dao", "impl", "DogDaoImpl.java")])

		m := w.Metrics()
		assert.Equal(t, 9, m.FilesGenerated)
		assert.Positive(t, m.TotalBytes)
		assert.Empty(t, m.Skipped)
	})

	t.Run("missing template fails its artifact only", func(t *testing.T) {
		g := zooGraph(t, &Config{
			TemplatesDir: testTemplates,
			Artifacts: []Artifact{
				{Name: "class", Template: "class.tmpl"},
				{Name: "repo", Template: "repo.tmpl", Dir: "repo", Suffix: "Repo"},
				{Name: "dao", Template: "dao.tmpl", Dir: "dao", Suffix: "Dao"},
			},
		})
		mem := newMemEmitter()
		err := NewTemplateWriter(g, mem).GenerateAll(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTemplate))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
		assert.Contains(t, err.Error(), "repo.tmpl")

		assert.Equal(t, []string{"Animal.java", "Dog.java", "Bone.java"}, mem.order)
	})

	t.Run("optional artifact is skipped", func(t *testing.T) {
		g := zooGraph(t, &Config{
			TemplatesDir: testTemplates,
			Artifacts: []Artifact{
				{Name: "repo", Template: "repo.tmpl", Optional: true},
				{Name: "dao", Template: "dao.tmpl", Suffix: "Dao"},
			},
		})
		mem := newMemEmitter()
		w := NewTemplateWriter(g, mem)
		require.NoError(t, w.GenerateAll(context.Background()))
		assert.Equal(t, []string{"repo"}, w.Metrics().Skipped)
		assert.Len(t, mem.files, 3)
	})

	t.Run("template syntax error", func(t *testing.T) {
		g := zooGraph(t, &Config{TemplatesDir: filepath.Join("testdata", "broken")})
		err := NewTemplateWriter(g, newMemEmitter()).GenerateAll(context.Background())
		require.Error(t, err)
		assert.True(t, IsTemplateError(err))
	})

	t.Run("execution error", func(t *testing.T) {
		g := zooGraph(t, &Config{
			TemplatesDir: testTemplates,
			Artifacts:    []Artifact{{Name: "fails", Template: "fails.tmpl"}},
		})
		err := NewTemplateWriter(g, newMemEmitter()).GenerateAll(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
		assert.Contains(t, err.Error(), "phase render")
		assert.Contains(t, err.Error(), "Animal.java")
	})

	t.Run("emit failure", func(t *testing.T) {
		g := zooGraph(t, &Config{TemplatesDir: testTemplates})
		mem := newMemEmitter()
		mem.fail["Dog.java"] = errors.New("disk full")
		err := NewTemplateWriter(g, mem).GenerateAll(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "phase write")
		assert.Contains(t, err.Error(), "disk full")
		assert.Equal(t, []string{"Animal.java"}, mem.order)
	})

	t.Run("go artifacts are formatted", func(t *testing.T) {
		g := zooGraph(t, &Config{
			TemplatesDir: testTemplates,
			Extension:    ".go",
			Artifacts:    []Artifact{{Name: "struct", Template: "struct.go.tmpl", Dir: "model"}},
		})
		mem := newMemEmitter()
		require.NoError(t, NewTemplateWriter(g, mem).GenerateAll(context.Background()))
		assert.Equal(t, "package model\n\ntype Dog struct {\n\tBone *Bone\n}\n", mem.files[filepath.Join("model", "Dog.go")])
	})

	t.Run("unformattable go source", func(t *testing.T) {
		g := zooGraph(t, &Config{
			TemplatesDir: testTemplates,
			Extension:    ".go",
			Artifacts:    []Artifact{{Name: "struct", Template: "invalid.go.tmpl"}},
		})
		mem := newMemEmitter()
		err := NewTemplateWriter(g, mem).GenerateAll(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "phase format")
		assert.Contains(t, mem.files, "Animal.go.error")
	})

	t.Run("canceled context", func(t *testing.T) {
		g := zooGraph(t, &Config{TemplatesDir: testTemplates})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		mem := newMemEmitter()
		err := NewTemplateWriter(g, mem).GenerateAll(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, mem.files)
	})
}

func TestDirEmitter(t *testing.T) {
	t.Run("creates nested directories", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "out")
		e := DirEmitter{Root: root}
		require.NoError(t, e.Emit(filepath.Join("dao", "impl", "DogDaoImpl.java"), []byte("impl")))

		data, err := os.ReadFile(filepath.Join(root, "dao", "impl", "DogDaoImpl.java"))
		require.NoError(t, err)
		assert.Equal(t, "impl", string(data))
	})

	t.Run("overwrites existing files", func(t *testing.T) {
		root := t.TempDir()
		e := DirEmitter{Root: root}
		require.NoError(t, e.Emit("Dog.java", []byte("old")))
		require.NoError(t, e.Emit("Dog.java", []byte("new")))

		data, err := os.ReadFile(filepath.Join(root, "Dog.java"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("fails when a file blocks the directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "dao"), []byte("x"), 0o644))
		err := DirEmitter{Root: root}.Emit(filepath.Join("dao", "DogDao.java"), []byte("x"))
		require.Error(t, err)
	})

	t.Run("rejects names outside the root", func(t *testing.T) {
		parent := t.TempDir()
		e := DirEmitter{Root: filepath.Join(parent, "out")}
		for _, name := range []string{
			filepath.Join("..", "escaped.java"),
			filepath.Join("dao", "..", "..", "escaped.java"),
			filepath.Join(parent, "abs.java"),
		} {
			err := e.Emit(name, []byte("x"))
			require.Error(t, err, name)
			assert.True(t, errors.Is(err, ErrPathEscape), name)
		}
		assert.NoFileExists(t, filepath.Join(parent, "escaped.java"))
		assert.NoFileExists(t, filepath.Join(parent, "abs.java"))
	})
}

func TestGenerate(t *testing.T) {
	t.Run("writes files under the target", func(t *testing.T) {
		target := t.TempDir()
		d, err := load.ParseFile(filepath.Join("..", "load", "testdata", "zoo.drawio"))
		require.NoError(t, err)
		g, err := NewGraph(&Config{Target: target, TemplatesDir: testTemplates, Logger: newTestLogger(t)}, d)
		require.NoError(t, err)

		m, err := Generate(context.Background(), g)
		require.NoError(t, err)
		assert.Equal(t, 9, m.FilesGenerated)

		for _, name := range []string{
			"Animal.java",
			filepath.Join("dao", "DogDao.java"),
			filepath.Join("dao", "impl", "BoneDaoImpl.java"),
		} {
			assert.FileExists(t, filepath.Join(target, name))
		}
	})

	t.Run("class names cannot escape the target", func(t *testing.T) {
		parent := t.TempDir()
		target := filepath.Join(parent, "out")
		g, err := NewGraph(&Config{Target: target, TemplatesDir: testTemplates, Logger: newTestLogger(t)}, diagram(
			entity("1", "../escaped", entityStyle),
		))
		require.NoError(t, err)

		_, err = Generate(context.Background(), g)
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
		assert.True(t, errors.Is(err, ErrPathEscape))
		assert.Contains(t, err.Error(), "phase write")
		assert.NoFileExists(t, filepath.Join(parent, "escaped.java"))
	})

	t.Run("requires a target", func(t *testing.T) {
		g, err := NewGraph(&Config{}, diagram())
		require.NoError(t, err)
		_, err = Generate(context.Background(), g)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}
