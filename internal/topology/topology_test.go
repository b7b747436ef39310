package topology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two unit squares sharing the edge x=1; arc 0 is the shared edge.
const twoSquares = `{
  "type": "Topology",
  "objects": {
    "counties": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "id": 1, "arcs": [[0, 1]]},
        {"type": "Polygon", "id": "2", "arcs": [[2, -1]]},
        {"type": "Polygon", "arcs": []},
        {"type": null}
      ]
    }
  },
  "arcs": [
    [[1, 0], [1, 1]],
    [[1, 1], [0, 1], [0, 0], [1, 0]],
    [[1, 0], [2, 0], [2, 1], [1, 1]]
  ]
}`

func decode(t *testing.T, doc string) *Topology {
	t.Helper()
	topo, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return topo
}

func TestFeaturesStitchesRings(t *testing.T) {
	topo := decode(t, twoSquares)

	features, err := topo.Features("counties")
	require.NoError(t, err)
	require.Len(t, features, 2)

	assert.Equal(t, 1, features[0].ID)
	left := features[0].Geometry.Polygon(0).LinearRing(0).FlatCoords()
	assert.Equal(t, []float64{1, 0, 1, 1, 0, 1, 0, 0, 1, 0}, left)

	assert.Equal(t, 2, features[1].ID)
	right := features[1].Geometry.Polygon(0).LinearRing(0).FlatCoords()
	assert.Equal(t, []float64{1, 0, 2, 0, 2, 1, 1, 1, 1, 0}, right)
}

func TestMeshInteriorOnly(t *testing.T) {
	topo := decode(t, twoSquares)

	mesh, err := topo.Mesh("counties", func(a, b *Geometry) bool { return a != b })
	require.NoError(t, err)
	require.Equal(t, 1, mesh.NumLineStrings())
	assert.Equal(t, []float64{1, 0, 1, 1}, mesh.LineString(0).FlatCoords())
}

func TestMeshAllArcs(t *testing.T) {
	topo := decode(t, twoSquares)

	mesh, err := topo.Mesh("counties", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, mesh.NumLineStrings())
}

func TestMeshExteriorOnly(t *testing.T) {
	topo := decode(t, twoSquares)

	mesh, err := topo.Mesh("counties", func(a, b *Geometry) bool { return a == b })
	require.NoError(t, err)
	assert.Equal(t, 2, mesh.NumLineStrings())
}

func TestQuantizedArcs(t *testing.T) {
	doc := `{
  "type": "Topology",
  "transform": {"scale": [0.5, 0.5], "translate": [10, 20]},
  "objects": {
    "states": {"type": "GeometryCollection", "geometries": [
      {"type": "MultiPolygon", "id": 6, "arcs": [[[0]]]}
    ]}
  },
  "arcs": [[[0, 0], [2, 0], [0, 2], [-2, 0], [0, -2]]]
}`
	topo := decode(t, doc)

	features, err := topo.Features("states")
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, 6, features[0].ID)
	assert.Equal(t,
		[]float64{10, 20, 11, 20, 11, 21, 10, 21, 10, 20},
		features[0].Geometry.Polygon(0).LinearRing(0).FlatCoords(),
	)
}

func TestPolygonWithHole(t *testing.T) {
	doc := `{
  "type": "Topology",
  "objects": {"c": {"type": "Polygon", "id": 9, "arcs": [[0], [1]]}},
  "arcs": [
    [[0, 0], [4, 0], [4, 4], [0, 4], [0, 0]],
    [[1, 1], [1, 2], [2, 2], [2, 1], [1, 1]]
  ]
}`
	topo := decode(t, doc)

	features, err := topo.Features("c")
	require.NoError(t, err)
	require.Len(t, features, 1)
	poly := features[0].Geometry.Polygon(0)
	assert.Equal(t, 2, poly.NumLinearRings())
}

func TestNumericID(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{`1001`, 1001, true},
		{`"01001"`, 1001, true},
		{`"abc"`, 0, false},
		{`1.5`, 0, false},
		{``, 0, false},
		{`null`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			g := &Geometry{ID: []byte(tt.raw)}
			got, ok := g.NumericID()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"type":"FeatureCollection"}`))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`not json`))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`{"type":"Topology","objects":{},"arcs":[[[1]]]}`))
	assert.Error(t, err)
}

func TestUnknownObject(t *testing.T) {
	topo := decode(t, twoSquares)

	_, err := topo.Features("nation")
	assert.Error(t, err)
	_, err = topo.Mesh("nation", nil)
	assert.Error(t, err)
	assert.Equal(t, []string{"counties"}, topo.ObjectNames())
}

func TestArcIndexOutOfRange(t *testing.T) {
	doc := `{"type":"Topology","objects":{"c":{"type":"Polygon","id":1,"arcs":[[5]]}},"arcs":[]}`
	topo := decode(t, doc)

	_, err := topo.Features("c")
	assert.Error(t, err)
}
