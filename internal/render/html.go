package render

import (
	"bytes"
	_ "embed"
	"html/template"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/edu-choropleth/internal/choropleth"
)

//go:embed page.html.tmpl
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

// Page is the document that owns the SVG canvas and the single tooltip
// element.
type Page struct {
	Title     string
	TooltipID string
	SVG       template.HTML
}

// HTML writes a standalone page embedding the map SVG and a hover tooltip.
func (r *Renderer) HTML(w io.Writer, m *choropleth.Map) error {
	var buf bytes.Buffer
	if err := r.SVG(&buf, m); err != nil {
		return err
	}

	// Drop the XML prolog svgo writes; it is not valid inside HTML.
	doc := buf.Bytes()
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}

	p := Page{
		Title:     r.opts.Title,
		TooltipID: "tooltip",
		SVG:       template.HTML(doc), //nolint:gosec // generated by SVG with escaped attributes
	}
	if err := page.Execute(w, p); err != nil {
		return eris.Wrap(err, "render: execute page template")
	}
	return nil
}
