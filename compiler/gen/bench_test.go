package gen_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/umlgen/compiler/gen"
	"github.com/syssam/umlgen/compiler/load"
)

// wideDiagram builds n classes where every class extends the first one and
// points to the next one.
func wideDiagram(n int) *load.Diagram {
	d := &load.Diagram{}
	for i := 1; i <= n; i++ {
		style := "shape=umlEntity;html=1;"
		if i == 1 {
			style += "dashed=1;"
		}
		d.Nodes = append(d.Nodes, load.NewNode("id", strconv.Itoa(i), "value", fmt.Sprintf("Class%d", i), "style", style))
	}
	for i := 2; i <= n; i++ {
		id := strconv.Itoa(i)
		d.Nodes = append(d.Nodes,
			load.NewNode("id", "e"+id, "style", "edgeStyle=orthogonalEdgeStyle;dashed=1;", "source", id, "target", "1"),
			load.NewNode("id", "p"+id, "style", "edgeStyle=orthogonalEdgeStyle;", "source", id, "target", strconv.Itoa(i%n+1)),
		)
	}
	return d
}

func BenchmarkGraph_Models(b *testing.B) {
	d := wideDiagram(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g, err := gen.NewGraph(nil, d)
		require.NoError(b, err)
		_ = g.Models()
	}
}

func BenchmarkGraph_Gen(b *testing.B) {
	target := filepath.Join(os.TempDir(), "umlgen")
	require.NoError(b, os.MkdirAll(target, os.ModePerm), "creating tmpdir")
	defer os.RemoveAll(target)
	g, err := gen.NewGraph(&gen.Config{
		Target:       target,
		TemplatesDir: filepath.Join("testdata", "templates"),
		GoPackage:    "model",
	}, wideDiagram(50))
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := gen.Generate(context.Background(), g)
		require.NoError(b, err)
	}
}
