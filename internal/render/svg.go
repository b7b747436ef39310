// Package render draws a choropleth map and its legend as SVG, and wraps
// it in an HTML page with a hover tooltip.
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/rotisserie/eris"

	"github.com/sells-group/edu-choropleth/internal/choropleth"
	"github.com/sells-group/edu-choropleth/internal/config"
	"github.com/sells-group/edu-choropleth/internal/model"
)

// Margin is the space around the map area.
type Margin struct {
	Top, Right, Bottom, Left int
}

// Options configures the renderer.
type Options struct {
	Width, Height int
	Margin        Margin
	Title         string
	Description   string
	// NoDataColor fills features without a record. Empty leaves fill unset.
	NoDataColor      string
	LegendCellWidth  int
	LegendCellHeight int
	TickPrecision    int
	Projection       string
	StrokeWidth      float64
}

// OptionsFromConfig maps render settings onto Options.
func OptionsFromConfig(cfg config.RenderConfig) Options {
	return Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Margin: Margin{
			Top:    cfg.Margin.Top,
			Right:  cfg.Margin.Right,
			Bottom: cfg.Margin.Bottom,
			Left:   cfg.Margin.Left,
		},
		Title:            cfg.Title,
		Description:      cfg.Description,
		NoDataColor:      cfg.NoDataColor,
		LegendCellWidth:  cfg.LegendCellWidth,
		LegendCellHeight: cfg.LegendCellHeight,
		TickPrecision:    cfg.TickPrecision,
		Projection:       cfg.Projection,
		StrokeWidth:      cfg.StrokeWidth,
	}
}

// Renderer draws maps with fixed options.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// CanvasSize returns the full SVG width and height including margins.
func (r *Renderer) CanvasSize() (int, int) {
	o := r.opts
	return o.Margin.Left + o.Width + o.Margin.Right, o.Margin.Top + o.Height + o.Margin.Bottom
}

// SVG writes the map, state borders, title, description and legend.
func (r *Renderer) SVG(w io.Writer, m *choropleth.Map) error {
	features := make([]model.Feature, 0, len(m.Counties))
	for _, c := range m.Counties {
		features = append(features, c.Feature)
	}
	proj, err := NewProjector(r.opts.Projection, features, float64(r.opts.Width), float64(r.opts.Height))
	if err != nil {
		return err
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	cw, ch := r.CanvasSize()
	canvas.Start(cw, ch, `id="svg-canvas"`)

	canvas.Text(cw/2, r.opts.Margin.Top/2-5, r.opts.Title,
		`id="title"`, `text-anchor="middle"`, "font-size:24px;font-family:sans-serif")
	canvas.Text(cw/2, r.opts.Margin.Top/2+20, r.opts.Description,
		`id="description"`, `text-anchor="middle"`, "font-size:14px;font-family:sans-serif")

	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", r.opts.Margin.Left, r.opts.Margin.Top))
	stroke := attr("stroke-width", strconv.FormatFloat(r.opts.StrokeWidth, 'f', -1, 64))
	for _, c := range m.Counties {
		d := polygonPath(c.Feature.Geometry, proj)
		if d == "" {
			continue
		}
		attrs := []string{
			`class="county"`,
			attr("data-fips", strconv.Itoa(c.Feature.ID)),
			`stroke="black"`,
			stroke,
			`fill-rule="evenodd"`,
		}
		switch {
		case c.Matched:
			attrs = append(attrs,
				attr("fill", c.Fill),
				attr("data-education", strconv.FormatFloat(c.Record.Value, 'f', -1, 64)),
				attr("data-tooltip", choropleth.Tooltip(c.Record)),
			)
		case r.opts.NoDataColor != "":
			attrs = append(attrs, attr("fill", r.opts.NoDataColor))
		}
		canvas.Path(d, attrs...)
	}
	if m.Borders != nil {
		if d := linePath(m.Borders, proj); d != "" {
			canvas.Path(d, `class="states"`, `fill="none"`, `stroke="white"`, `stroke-linejoin="round"`)
		}
	}
	canvas.Gend()

	r.legend(canvas, m)
	canvas.End()

	if ew.err != nil {
		return eris.Wrap(ew.err, "render: write svg")
	}
	return nil
}

// legend draws one cell per bucket color and an axis whose ticks are the
// bucket edges, centered under the map.
func (r *Renderer) legend(canvas *svg.SVG, m *choropleth.Map) {
	cls := m.Classifier
	colors := cls.Colors()
	cellW, cellH := r.opts.LegendCellWidth, r.opts.LegendCellHeight
	width := cellW * len(colors)

	x := r.opts.Margin.Left + (r.opts.Width-width)/2
	y := r.opts.Margin.Top + r.opts.Height + r.opts.Margin.Bottom/3
	canvas.Group(`id="legend"`, fmt.Sprintf(`transform="translate(%d,%d)"`, x, y))

	for i, c := range colors {
		canvas.Rect(i*cellW, 0, cellW, cellH, attr("fill", c), `stroke="black"`, "stroke-width:0.2")
	}

	canvas.Group(`id="lg-axis"`, fmt.Sprintf(`transform="translate(0,%d)"`, cellH))
	canvas.Line(0, 0, width, 0, `stroke="black"`)
	// Tick i sits on the left edge of cell i; the last tick closes the
	// final cell. Cells are equal width, matching the equal-width buckets.
	for i, t := range cls.Ticks() {
		tx := i * cellW
		canvas.Line(tx, 0, tx, 6, `stroke="black"`, `class="tick"`)
		canvas.Text(tx, 18, FormatTick(t, r.opts.TickPrecision),
			`text-anchor="middle"`, "font-size:10px;font-family:sans-serif")
	}
	canvas.Gend()
	canvas.Gend()
}

// attr formats an XML attribute with an escaped value.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

// errWriter records the first write error so the svgo calls, which do not
// return errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
