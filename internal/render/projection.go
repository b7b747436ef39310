package render

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/edu-choropleth/internal/model"
)

// Projection names accepted by NewProjector.
const (
	ProjectionIdentity        = "identity"
	ProjectionEquirectangular = "equirectangular"
)

// Projector maps source coordinates to canvas pixels.
type Projector interface {
	Project(x, y float64) (float64, float64)
}

// IdentityProjector passes coordinates through. It suits topologies that
// are already projected to screen space.
type IdentityProjector struct{}

// Project implements Projector.
func (IdentityProjector) Project(x, y float64) (float64, float64) { return x, y }

// Equirectangular fits lon/lat coordinates into a width x height box,
// scaling longitude by the cosine of the box's middle latitude and
// flipping y so north is up.
type Equirectangular struct {
	minX, maxY float64
	kx         float64
	scale      float64
	offX, offY float64
}

// NewEquirectangular builds a projection that fits bounds into the box.
func NewEquirectangular(bounds *geom.Bounds, width, height float64) (*Equirectangular, error) {
	if bounds == nil || bounds.IsEmpty() {
		return nil, eris.New("render: empty bounds")
	}
	minX, minY := bounds.Min(0), bounds.Min(1)
	maxX, maxY := bounds.Max(0), bounds.Max(1)

	kx := math.Cos((minY + maxY) / 2 * math.Pi / 180)
	if kx <= 0 {
		kx = 1
	}
	spanX := (maxX - minX) * kx
	spanY := maxY - minY
	if spanX <= 0 || spanY <= 0 {
		return nil, eris.New("render: bounds have zero extent")
	}

	scale := math.Min(width/spanX, height/spanY)
	return &Equirectangular{
		minX:  minX,
		maxY:  maxY,
		kx:    kx,
		scale: scale,
		offX:  (width - spanX*scale) / 2,
		offY:  (height - spanY*scale) / 2,
	}, nil
}

// Project implements Projector.
func (e *Equirectangular) Project(x, y float64) (float64, float64) {
	return (x-e.minX)*e.kx*e.scale + e.offX, (e.maxY-y)*e.scale + e.offY
}

// FeatureBounds returns the combined bounds of all feature geometries.
func FeatureBounds(features []model.Feature) *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, f := range features {
		if f.Geometry != nil {
			b.Extend(f.Geometry)
		}
	}
	return b
}

// NewProjector returns the named projection fitted to the features.
func NewProjector(name string, features []model.Feature, width, height float64) (Projector, error) {
	switch name {
	case "", ProjectionIdentity:
		return IdentityProjector{}, nil
	case ProjectionEquirectangular:
		return NewEquirectangular(FeatureBounds(features), width, height)
	default:
		return nil, eris.Errorf("render: unknown projection %q", name)
	}
}
