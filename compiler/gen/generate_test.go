package gen

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStructs(t *testing.T) {
	t.Run("one file per class", func(t *testing.T) {
		g := zooGraph(t, &Config{
			TemplatesDir: testTemplates,
			GoPackage:    "model",
			Header:       "Code generated by umlgen. DO NOT EDIT.",
		})
		mem := newMemEmitter()
		w := NewTemplateWriter(g, mem)
		require.NoError(t, w.GenerateAll(context.Background()))

		goFiles := mem.order[len(mem.order)-3:]
		assert.Equal(t, []string{
			filepath.Join("go", "animal.go"),
			filepath.Join("go", "dog.go"),
			filepath.Join("go", "bone.go"),
		}, goFiles)
		assert.Equal(t, 12, w.Metrics().FilesGenerated)

		dog := mem.files[filepath.Join("go", "dog.go")]
		assert.Contains(t, dog, "// Code generated by umlgen. DO NOT EDIT.")
		assert.Contains(t, dog, "package model")
		assert.Contains(t, dog, "type Dog struct {")
		assert.Contains(t, dog, "\tAnimal\n")
		assert.Contains(t, dog, "Bone *Bone `json:\"bone,omitempty\"`")
		assert.Contains(t, dog, `const DogTable = "DOG"`)

		animal := mem.files[filepath.Join("go", "animal.go")]
		assert.Contains(t, animal, "It is abstract and meant to be embedded by its subclasses.")
	})

	t.Run("custom directory", func(t *testing.T) {
		g := zooGraph(t, &Config{GoPackage: "entity", GoDir: "entity"})
		mem := newMemEmitter()
		w := NewTemplateWriter(g, mem)
		require.NoError(t, w.GenerateStructs(context.Background(), g.Models()))
		assert.Contains(t, mem.files, filepath.Join("entity", "dog.go"))
	})

	t.Run("repeated attributes get distinct fields", func(t *testing.T) {
		g, err := NewGraph(&Config{GoPackage: "model"}, diagram(
			entity("1", "Invoice", entityStyle),
			entity("2", "LineItem", entityStyle),
			edge("3", "1", "2", pointsStyle),
			edge("4", "1", "2", pointsStyle),
		))
		require.NoError(t, err)
		mem := newMemEmitter()
		require.NoError(t, NewTemplateWriter(g, mem).GenerateStructs(context.Background(), g.Models()))

		invoice := mem.files[filepath.Join("go", "invoice.go")]
		assert.Contains(t, invoice, "LineItem ")
		assert.Contains(t, invoice, "LineItem2 *LineItem")
		assert.Contains(t, mem.files, filepath.Join("go", "line_item.go"))
	})

	t.Run("colliding file names", func(t *testing.T) {
		g, err := NewGraph(&Config{GoPackage: "model"}, diagram(
			entity("1", "OrderItem", entityStyle),
			entity("2", "Order Item", entityStyle),
		))
		require.NoError(t, err)
		mem := newMemEmitter()
		err = NewTemplateWriter(g, mem).GenerateStructs(context.Background(), g.Models())
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
		assert.Contains(t, err.Error(), `"OrderItem" and "Order Item"`)
		assert.Equal(t, []string{filepath.Join("go", "order_item.go")}, mem.order)
	})

	t.Run("colliding type names", func(t *testing.T) {
		g, err := NewGraph(&Config{GoPackage: "model"}, diagram(
			entity("1", "a.b", entityStyle),
			entity("2", "AB", entityStyle),
		))
		require.NoError(t, err)
		err = NewTemplateWriter(g, newMemEmitter()).GenerateStructs(context.Background(), g.Models())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "same Go type AB")
	})
}
