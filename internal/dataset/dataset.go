// Package dataset loads the statistics and geometry inputs concurrently.
package dataset

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/edu-choropleth/internal/config"
	"github.com/sells-group/edu-choropleth/internal/fetcher"
	"github.com/sells-group/edu-choropleth/internal/geo"
	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/topology"
)

// ErrUnavailable marks a failed load of either input. Loads are not retried.
var ErrUnavailable = eris.New("dataset: data unavailable")

// Dataset is the joined result of one load.
type Dataset struct {
	Records  []model.Record
	Features []model.Feature
	// Borders is the interior state boundary mesh; nil when the geometry
	// source carries no topology.
	Borders *geom.MultiLineString
}

// Loader fetches both inputs described by a DataConfig.
type Loader struct {
	fetcher fetcher.Fetcher
	cfg     config.DataConfig
}

// NewLoader creates a Loader.
func NewLoader(f fetcher.Fetcher, cfg config.DataConfig) *Loader {
	return &Loader{fetcher: f, cfg: cfg}
}

// Load fetches statistics and geometry concurrently and returns once both
// are available. The first failure cancels the other fetch; the returned
// error wraps ErrUnavailable.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	log := zap.L().With(zap.String("component", "dataset"))
	start := time.Now()

	var ds Dataset
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := l.loadRecords(gCtx)
		if err != nil {
			return eris.Wrap(err, "statistics")
		}
		ds.Records = recs
		return nil
	})

	g.Go(func() error {
		features, borders, err := l.loadGeometry(gCtx)
		if err != nil {
			return eris.Wrap(err, "geometry")
		}
		ds.Features = features
		ds.Borders = borders
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("dataset load failed", zap.Error(err))
		return nil, eris.Wrapf(ErrUnavailable, "%v", err)
	}

	log.Info("dataset loaded",
		zap.Int("records", len(ds.Records)),
		zap.Int("features", len(ds.Features)),
		zap.Bool("borders", ds.Borders != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &ds, nil
}

func (l *Loader) loadRecords(ctx context.Context) ([]model.Record, error) {
	body, err := l.fetcher.Download(ctx, l.cfg.EducationURL)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	return fetcher.ReadJSONArray[model.Record](ctx, body)
}

func (l *Loader) loadGeometry(ctx context.Context) ([]model.Feature, *geom.MultiLineString, error) {
	if l.cfg.GeometrySource == config.SourceShapefile {
		features, err := geo.LoadShapefile(l.cfg.ShapefilePath, l.cfg.ShapefileIDField)
		return features, nil, err
	}

	body, err := l.fetcher.Download(ctx, l.cfg.GeometryURL)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close() //nolint:errcheck

	topo, err := topology.Decode(body)
	if err != nil {
		return nil, nil, err
	}

	features, err := topo.Features(l.cfg.CountiesObject)
	if err != nil {
		return nil, nil, err
	}

	if l.cfg.StatesObject == "" {
		return features, nil, nil
	}
	borders, err := topo.Mesh(l.cfg.StatesObject, func(a, b *topology.Geometry) bool { return a != b })
	if err != nil {
		return nil, nil, err
	}
	return features, borders, nil
}
