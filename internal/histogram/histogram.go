// Package histogram draws the number of counties in each color bucket as a
// bar chart.
package histogram

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sells-group/edu-choropleth/internal/choropleth"
	"github.com/sells-group/edu-choropleth/internal/render"
)

const (
	labelPrecision = 1
	barWidth       = 24
)

// Formats lists the output formats accepted by Render.
var Formats = []string{"png", "svg", "pdf", "jpg", "eps", "tif"}

// Render writes a bar chart of matched counties per bucket. width and height
// are in points.
func Render(w io.Writer, m *choropleth.Map, format string, width, height float64) error {
	format = strings.ToLower(format)
	if !supported(format) {
		return eris.Errorf("histogram: unsupported format %q", format)
	}
	if width <= 0 || height <= 0 {
		return eris.Errorf("histogram: invalid size %gx%g", width, height)
	}

	p, err := build(m)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(vg.Points(width), vg.Points(height), format)
	if err != nil {
		return eris.Wrapf(err, "histogram: create %s writer", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return eris.Wrapf(err, "histogram: write %s", format)
	}
	return nil
}

func build(m *choropleth.Map) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Counties per attainment bucket"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Bachelor's degree or higher"
	p.Y.Label.Text = "Counties"
	p.Y.Min = 0

	counts := m.Summary().BucketCounts
	colors := m.Classifier.Colors()
	labels := make([]string, len(counts))

	for i, n := range counts {
		bars, err := plotter.NewBarChart(plotter.Values{float64(n)}, vg.Points(barWidth))
		if err != nil {
			return nil, eris.Wrapf(err, "histogram: bar %d", i)
		}
		c, err := colors.RGBA(i)
		if err != nil {
			return nil, eris.Wrapf(err, "histogram: bar %d color", i)
		}
		bars.Color = c
		bars.XMin = float64(i)
		bars.LineStyle.Width = vg.Length(0.5)
		p.Add(bars)

		iv, _ := m.Classifier.Interval(i)
		labels[i] = render.FormatTick(iv.Low, labelPrecision)
	}

	p.NominalX(labels...)
	p.X.Tick.Label.XAlign = draw.XCenter
	p.Add(plotter.NewGrid())
	return p, nil
}

func supported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
