// Package choropleth joins geographic features with their statistic
// records and assigns each one a bucket color.
package choropleth

import (
	"strconv"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/edu-choropleth/internal/classify"
	"github.com/sells-group/edu-choropleth/internal/dataset"
	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/palette"
	"github.com/sells-group/edu-choropleth/internal/stats"
)

// County is one feature joined with its record. Fill is empty and Bucket
// is -1 when Matched is false.
type County struct {
	Feature model.Feature
	Record  model.Record
	Matched bool
	Bucket  int
	Fill    string
}

// Map is the immutable result of joining one dataset. It is safe for
// concurrent use.
type Map struct {
	Index      *stats.Index
	Classifier *classify.Classifier
	Counties   []County
	Borders    *geom.MultiLineString

	summary Summary
	plotted map[int]bool
}

// Summary describes the join.
type Summary struct {
	Features       int     `json:"features"`
	Records        int     `json:"records"`
	Matched        int     `json:"matched"`
	Unmatched      int     `json:"unmatched_features"`
	RecordsWithout int     `json:"records_without_geometry"`
	Duplicates     int     `json:"duplicate_records"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Degenerate     bool    `json:"degenerate"`
	BucketCounts   []int   `json:"bucket_counts"`
	DistinctColors int     `json:"distinct_colors"`
}

// Build indexes the records, classifies over their range and joins every
// feature by key.
func Build(ds *dataset.Dataset, pal palette.Palette) (*Map, error) {
	idx := stats.NewIndex(ds.Records)
	cls, err := classify.New(idx.Values(), pal)
	if err != nil {
		return nil, err
	}

	m := &Map{
		Index:      idx,
		Classifier: cls,
		Counties:   make([]County, 0, len(ds.Features)),
		Borders:    ds.Borders,
	}

	lo, hi := cls.Domain()
	s := Summary{
		Features:     len(ds.Features),
		Records:      idx.Len(),
		Duplicates:   idx.Duplicates(),
		Min:          lo,
		Max:          hi,
		Degenerate:   cls.Degenerate(),
		BucketCounts: make([]int, cls.Buckets()),
	}

	plotted := make(map[int]bool, len(ds.Features))
	for _, f := range ds.Features {
		c := County{Feature: f, Bucket: -1}
		if rec, ok := idx.Lookup(f.ID); ok {
			c.Record = rec
			c.Matched = true
			c.Bucket = cls.Bucket(rec.Value)
			c.Fill = cls.Classify(rec.Value)
			s.Matched++
			s.BucketCounts[c.Bucket]++
			plotted[f.ID] = true
		} else {
			s.Unmatched++
		}
		m.Counties = append(m.Counties, c)
	}
	s.RecordsWithout = idx.Len() - len(plotted)
	for _, n := range s.BucketCounts {
		if n > 0 {
			s.DistinctColors++
		}
	}
	m.summary = s
	m.plotted = plotted

	log := zap.L().With(zap.String("component", "choropleth"))
	if s.Duplicates > 0 {
		log.Warn("duplicate record keys, last record kept", zap.Int("duplicates", s.Duplicates))
	}
	if s.Unmatched > 0 || s.RecordsWithout > 0 {
		log.Warn("incomplete join",
			zap.Int("unmatched_features", s.Unmatched),
			zap.Int("records_without_geometry", s.RecordsWithout),
		)
	}
	log.Info("map built",
		zap.Int("counties", len(m.Counties)),
		zap.Int("matched", s.Matched),
		zap.Float64("min", lo),
		zap.Float64("max", hi),
		zap.Int("buckets", cls.Buckets()),
	)
	return m, nil
}

// Summary returns counts describing the join.
func (m *Map) Summary() Summary {
	s := m.summary
	s.BucketCounts = append([]int(nil), m.summary.BucketCounts...)
	return s
}

// Tooltip returns the hover text for a record, e.g.
// "Autauga County, AL: 21.9%".
func Tooltip(rec model.Record) string {
	return rec.RegionName + ", " + rec.RegionGroup + ": " + strconv.FormatFloat(rec.Value, 'f', -1, 64) + "%"
}
