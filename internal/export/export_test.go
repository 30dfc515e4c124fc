package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

func nestedForest(t *testing.T) *hierarchy.Forest {
	t.Helper()
	f, err := hierarchy.Build([]hierarchy.Region{
		hierarchy.NewBoxRegion("A", 10, 10, 100, 100),
		hierarchy.NewBoxRegion("B", 20, 20, 50, 50),
		hierarchy.NewBoxRegion("C", 30, 30, 10, 10),
		hierarchy.NewBoxRegion("D", 200, 200, 10, 10),
	}, hierarchy.Options{})
	require.NoError(t, err)
	return f
}

func TestView(t *testing.T) {
	v := View(nestedForest(t))

	assert.Equal(t, 4, v.Nodes)
	assert.Equal(t, 3, v.Depth)
	require.Len(t, v.Roots, 2)

	a := v.Roots[0]
	assert.Equal(t, 0, a.ID)
	assert.Equal(t, "A", a.Label)
	assert.Equal(t, 10000, a.Area)
	require.Len(t, a.Children, 1)
	assert.Equal(t, 1, a.Children[0].ID)
	assert.Equal(t, 2, a.Children[0].Children[0].ID)
	assert.Equal(t, 3, v.Roots[1].ID)
}

func TestView_Empty(t *testing.T) {
	f, err := hierarchy.Build(nil, hierarchy.DefaultOptions())
	require.NoError(t, err)

	b, err := ToJSON(f)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"roots": []`)
	assert.Contains(t, string(b), `"nodes": 0`)
}

func TestToJSON(t *testing.T) {
	b, err := ToJSON(nestedForest(t))
	require.NoError(t, err)

	var decoded ForestView
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "C", decoded.Roots[0].Children[0].Children[0].Label)
	assert.Equal(t, hierarchy.Box{X: 30, Y: 30, Width: 10, Height: 10}, decoded.Roots[0].Children[0].Children[0].Box)
}

func TestToYAML(t *testing.T) {
	b, err := ToYAML(nestedForest(t))
	require.NoError(t, err)

	var decoded ForestView
	require.NoError(t, yaml.Unmarshal(b, &decoded))
	assert.Equal(t, 4, decoded.Nodes)
	assert.Equal(t, "D", decoded.Roots[1].Label)
	assert.Contains(t, string(b), "width: 100")
}

func TestNodeAt(t *testing.T) {
	f := nestedForest(t)

	n, ok := NodeAt(f, 2)
	require.True(t, ok)
	assert.Equal(t, "C", n.Region.(*hierarchy.BoxRegion).Label)

	n, ok = NodeAt(f, 3)
	require.True(t, ok)
	assert.Equal(t, "D", n.Region.(*hierarchy.BoxRegion).Label)

	_, ok = NodeAt(f, 4)
	assert.False(t, ok)
	_, ok = NodeAt(f, -1)
	assert.False(t, ok)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(nestedForest(t))

	assert.True(t, strings.HasPrefix(dot, "digraph regions {"))
	assert.Contains(t, dot, `n0 [label="#0 A\n(10,10 100x100)\narea 10000"];`)
	assert.Contains(t, dot, "n0 -> n1;")
	assert.Contains(t, dot, "n1 -> n2;")
	assert.NotContains(t, dot, "n0 -> n2;")
	assert.NotContains(t, dot, "-> n3;")
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestEscapeDOT(t *testing.T) {
	assert.Equal(t, `say \"hi\"\n`, escapeDOT(`say "hi"\n`))
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(nestedForest(t)))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}
