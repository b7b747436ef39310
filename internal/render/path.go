package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// polygonPath builds SVG path data for a multipolygon, one closed subpath
// per ring.
func polygonPath(mp *geom.MultiPolygon, proj Projector) string {
	if mp == nil {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		for j := 0; j < poly.NumLinearRings(); j++ {
			writeLine(&sb, poly.LinearRing(j).FlatCoords(), proj)
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

// linePath builds SVG path data for a multilinestring.
func linePath(mls *geom.MultiLineString, proj Projector) string {
	if mls == nil {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < mls.NumLineStrings(); i++ {
		writeLine(&sb, mls.LineString(i).FlatCoords(), proj)
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, flat []float64, proj Projector) {
	for k := 0; k+1 < len(flat); k += 2 {
		x, y := proj.Project(flat[k], flat[k+1])
		if k == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte('L')
		}
		sb.WriteString(coord(x))
		sb.WriteByte(',')
		sb.WriteString(coord(y))
	}
}

// coord rounds to hundredths of a pixel.
func coord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
