// Package topology decodes TopoJSON into go-geom geometries: polygon
// features per object and shared-boundary meshes.
package topology

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/edu-choropleth/internal/model"
)

// Transform is the quantization transform of a topology.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Geometry is one TopoJSON geometry object. Arcs holds arc indexes nested
// according to Type; Geometries is set for GeometryCollection.
type Geometry struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
	Arcs       json.RawMessage `json:"arcs,omitempty"`
	Geometries []*Geometry     `json:"geometries,omitempty"`
}

// Topology is a decoded TopoJSON document.
type Topology struct {
	Type      string               `json:"type"`
	BBox      []float64            `json:"bbox,omitempty"`
	Transform *Transform           `json:"transform,omitempty"`
	Objects   map[string]*Geometry `json:"objects"`
	Arcs      [][][]float64        `json:"arcs"`

	// coords[i] holds arc i as absolute flat XY pairs.
	coords [][]float64
}

// Decode reads a topology and resolves its arcs to absolute coordinates.
func Decode(r io.Reader) (*Topology, error) {
	var t Topology
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, eris.Wrap(err, "topology: decode")
	}
	if t.Type != "Topology" {
		return nil, eris.Errorf("topology: unexpected type %q", t.Type)
	}
	if err := t.resolveArcs(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Topology) resolveArcs() error {
	t.coords = make([][]float64, len(t.Arcs))
	for i, arc := range t.Arcs {
		flat := make([]float64, 0, len(arc)*2)
		var x, y float64
		for j, pos := range arc {
			if len(pos) < 2 {
				return eris.Errorf("topology: arc %d position %d has %d dims", i, j, len(pos))
			}
			if t.Transform == nil {
				flat = append(flat, pos[0], pos[1])
				continue
			}
			x += pos[0]
			y += pos[1]
			flat = append(flat,
				x*t.Transform.Scale[0]+t.Transform.Translate[0],
				y*t.Transform.Scale[1]+t.Transform.Translate[1],
			)
		}
		t.coords[i] = flat
	}
	return nil
}

// Object returns the named object.
func (t *Topology) Object(name string) (*Geometry, error) {
	obj, ok := t.Objects[name]
	if !ok || obj == nil {
		return nil, eris.Errorf("topology: object %q not found", name)
	}
	return obj, nil
}

// ObjectNames lists the objects in the topology.
func (t *Topology) ObjectNames() []string {
	names := make([]string, 0, len(t.Objects))
	for k := range t.Objects {
		names = append(names, k)
	}
	return names
}

// Features converts the polygonal geometries of an object into features.
// Geometries without a numeric id or without polygon arcs are skipped.
func (t *Topology) Features(object string) ([]model.Feature, error) {
	obj, err := t.Object(object)
	if err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("component", "topology"), zap.String("object", object))

	var features []model.Feature
	var skipped int
	for _, g := range flatten(obj) {
		id, ok := g.NumericID()
		if !ok {
			skipped++
			continue
		}
		mp, err := t.multiPolygon(g)
		if err != nil {
			return nil, eris.Wrapf(err, "topology: geometry %d", id)
		}
		if mp == nil {
			skipped++
			continue
		}
		features = append(features, model.Feature{ID: id, Geometry: mp})
	}

	if skipped > 0 {
		log.Debug("skipped geometries", zap.Int("skipped", skipped))
	}
	return features, nil
}

// Mesh returns the arcs of an object as line strings. An arc shared by
// geometries a and b is kept when filter(a, b) is true; an arc used by a
// single geometry is tested as filter(a, a). A nil filter keeps all arcs.
func (t *Topology) Mesh(object string, filter func(a, b *Geometry) bool) (*geom.MultiLineString, error) {
	obj, err := t.Object(object)
	if err != nil {
		return nil, err
	}

	geomsByArc := make(map[int][]*Geometry)
	var order []int
	for _, g := range flatten(obj) {
		arcs, err := g.arcIndexes()
		if err != nil {
			return nil, err
		}
		for _, a := range arcs {
			i := absArc(a)
			if _, ok := geomsByArc[i]; !ok {
				order = append(order, i)
			}
			geomsByArc[i] = append(geomsByArc[i], g)
		}
	}

	mls := geom.NewMultiLineString(geom.XY)
	for _, i := range order {
		if i < 0 || i >= len(t.coords) {
			return nil, eris.Errorf("topology: arc index %d out of range", i)
		}
		gs := geomsByArc[i]
		if filter != nil && !filter(gs[0], gs[len(gs)-1]) {
			continue
		}
		ls := geom.NewLineStringFlat(geom.XY, t.coords[i])
		if err := mls.Push(ls); err != nil {
			return nil, eris.Wrapf(err, "topology: push arc %d", i)
		}
	}
	return mls, nil
}

// NumericID parses the geometry id as an integer. Both JSON numbers and
// numeric strings ("01001") are accepted.
func (g *Geometry) NumericID() (int, bool) {
	if len(g.ID) == 0 {
		return 0, false
	}
	var v any
	if err := json.Unmarshal(g.ID, &v); err != nil {
		return 0, false
	}
	switch id := v.(type) {
	case float64:
		if id != float64(int(id)) {
			return 0, false
		}
		return int(id), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func (t *Topology) multiPolygon(g *Geometry) (*geom.MultiPolygon, error) {
	var polygons [][][]int
	switch g.Type {
	case "Polygon":
		var rings [][]int
		if err := json.Unmarshal(g.Arcs, &rings); err != nil {
			return nil, eris.Wrap(err, "decode polygon arcs")
		}
		polygons = [][][]int{rings}
	case "MultiPolygon":
		if err := json.Unmarshal(g.Arcs, &polygons); err != nil {
			return nil, eris.Wrap(err, "decode multipolygon arcs")
		}
	default:
		return nil, nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for _, rings := range polygons {
		poly := geom.NewPolygon(geom.XY)
		for _, ring := range rings {
			flat, err := t.stitch(ring)
			if err != nil {
				return nil, err
			}
			if len(flat) < 8 {
				continue
			}
			if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
				return nil, eris.Wrap(err, "push ring")
			}
		}
		if poly.NumLinearRings() == 0 {
			continue
		}
		if err := mp.Push(poly); err != nil {
			return nil, eris.Wrap(err, "push polygon")
		}
	}
	if mp.NumPolygons() == 0 {
		return nil, nil
	}
	return mp, nil
}

// stitch joins arcs into one coordinate sequence. Each arc after the first
// starts on the previous arc's last point, which is dropped.
func (t *Topology) stitch(arcs []int) ([]float64, error) {
	var flat []float64
	for k, a := range arcs {
		i := absArc(a)
		if i < 0 || i >= len(t.coords) {
			return nil, eris.Errorf("arc index %d out of range", a)
		}
		src := t.coords[i]
		pts := make([]float64, len(src))
		if a < 0 {
			for p := 0; p < len(src); p += 2 {
				q := len(src) - 2 - p
				pts[p], pts[p+1] = src[q], src[q+1]
			}
		} else {
			copy(pts, src)
		}
		if k > 0 && len(pts) >= 2 {
			pts = pts[2:]
		}
		flat = append(flat, pts...)
	}
	return flat, nil
}

// arcIndexes returns every arc reference of a geometry, signs preserved.
func (g *Geometry) arcIndexes() ([]int, error) {
	if len(g.Arcs) == 0 {
		return nil, nil
	}
	var out []int
	switch g.Type {
	case "LineString":
		if err := json.Unmarshal(g.Arcs, &out); err != nil {
			return nil, eris.Wrap(err, "topology: decode linestring arcs")
		}
	case "MultiLineString", "Polygon":
		var nested [][]int
		if err := json.Unmarshal(g.Arcs, &nested); err != nil {
			return nil, eris.Wrapf(err, "topology: decode %s arcs", strings.ToLower(g.Type))
		}
		for _, n := range nested {
			out = append(out, n...)
		}
	case "MultiPolygon":
		var nested [][][]int
		if err := json.Unmarshal(g.Arcs, &nested); err != nil {
			return nil, eris.Wrap(err, "topology: decode multipolygon arcs")
		}
		for _, p := range nested {
			for _, r := range p {
				out = append(out, r...)
			}
		}
	}
	return out, nil
}

func flatten(g *Geometry) []*Geometry {
	if g.Type != "GeometryCollection" {
		return []*Geometry{g}
	}
	var out []*Geometry
	for _, child := range g.Geometries {
		if child == nil {
			continue
		}
		out = append(out, flatten(child)...)
	}
	return out
}

// absArc maps a possibly reversed arc reference (~i) to its index.
func absArc(a int) int {
	if a < 0 {
		return ^a
	}
	return a
}
