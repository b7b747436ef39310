package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/edu-choropleth/internal/choropleth"
	"github.com/sells-group/edu-choropleth/internal/dataset"
	"github.com/sells-group/edu-choropleth/internal/fetcher"
	"github.com/sells-group/edu-choropleth/internal/palette"
	"github.com/sells-group/edu-choropleth/internal/render"
)

// mapEnv holds the built map and the renderer configured for it.
type mapEnv struct {
	Map      *choropleth.Map
	Renderer *render.Renderer
	Palette  palette.Palette
}

// initMap resolves the palette, loads both inputs and builds the map.
// A load failure wraps dataset.ErrUnavailable.
func initMap(ctx context.Context) (*mapEnv, error) {
	pal, err := palette.Resolve(cfg.Render.Palette, cfg.Render.PaletteFile)
	if err != nil {
		return nil, err
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.Fetch.UserAgent,
		Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		RatePerSec: cfg.Fetch.RatePerSec,
	})

	ds, err := dataset.NewLoader(f, cfg.Data).Load(ctx)
	if err != nil {
		return nil, err
	}

	m, err := choropleth.Build(ds, pal)
	if err != nil {
		return nil, eris.Wrap(err, "build map")
	}

	return &mapEnv{
		Map:      m,
		Renderer: render.NewRenderer(render.OptionsFromConfig(cfg.Render)),
		Palette:  pal,
	}, nil
}

// openOutput returns w when path is empty or "-", otherwise a new file.
func openOutput(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create %s", path)
	}
	return f, f.Close, nil
}
