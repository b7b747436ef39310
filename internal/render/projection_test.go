package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/edu-choropleth/internal/model"
)

func TestIdentityProjector(t *testing.T) {
	x, y := IdentityProjector{}.Project(12.5, -3)
	assert.InDelta(t, 12.5, x, 0)
	assert.InDelta(t, -3.0, y, 0)
}

func TestEquirectangularFitsBox(t *testing.T) {
	features := []model.Feature{
		{ID: 1, Geometry: square(-10, -10)},
		{ID: 2, Geometry: square(0, 0)},
	}
	bounds := FeatureBounds(features)
	assert.InDelta(t, -10.0, bounds.Min(0), 0)
	assert.InDelta(t, 10.0, bounds.Max(1), 0)

	p, err := NewEquirectangular(bounds, 400, 400)
	require.NoError(t, err)

	// North-west corner maps to the top of the box; y is flipped.
	_, top := p.Project(-10, 10)
	_, bottom := p.Project(-10, -10)
	assert.InDelta(t, 0.0, top, 1e-9)
	assert.InDelta(t, 400.0, bottom, 1e-9)

	left, _ := p.Project(-10, 0)
	right, _ := p.Project(10, 0)
	assert.InDelta(t, 200.0, (left+right)/2, 1e-9)
	assert.GreaterOrEqual(t, left, 0.0)
	assert.LessOrEqual(t, right, 400.0)
}

func TestEquirectangularEmptyBounds(t *testing.T) {
	_, err := NewEquirectangular(geom.NewBounds(geom.XY), 100, 100)
	assert.Error(t, err)

	_, err = NewEquirectangular(nil, 100, 100)
	assert.Error(t, err)
}

func TestNewProjector(t *testing.T) {
	features := []model.Feature{{ID: 1, Geometry: square(-100, 30)}}

	p, err := NewProjector("", features, 100, 100)
	require.NoError(t, err)
	assert.IsType(t, IdentityProjector{}, p)

	p, err = NewProjector(ProjectionEquirectangular, features, 100, 100)
	require.NoError(t, err)
	assert.IsType(t, &Equirectangular{}, p)

	_, err = NewProjector("albers", features, 100, 100)
	assert.Error(t, err)
}

func TestCoordRounding(t *testing.T) {
	assert.Equal(t, "1.23", coord(1.23456))
	assert.Equal(t, "0", coord(-0.001))
	assert.Equal(t, "-5.5", coord(-5.5))
	assert.Equal(t, "100", coord(100))
}
