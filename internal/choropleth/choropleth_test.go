package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/edu-choropleth/internal/dataset"
	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/palette"
)

var four = palette.Palette{"#eff3ff", "#bdd7e7", "#6baed6", "#2171b5"}

func unitSquare(x float64) *geom.MultiPolygon {
	mp := geom.NewMultiPolygon(geom.XY)
	poly := geom.NewPolygon(geom.XY)
	_ = poly.Push(geom.NewLinearRingFlat(geom.XY, []float64{x, 0, x + 1, 0, x + 1, 1, x, 1, x, 0}))
	_ = mp.Push(poly)
	return mp
}

func sampleDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Records: []model.Record{
			{Key: 1, RegionName: "West County", RegionGroup: "AL", Value: 10},
			{Key: 2, RegionName: "East County", RegionGroup: "AL", Value: 90},
			{Key: 3, RegionName: "Middle County", RegionGroup: "AL", Value: 50},
			{Key: 4, RegionName: "Island County", RegionGroup: "HI", Value: 31.5},
		},
		Features: []model.Feature{
			{ID: 1, Geometry: unitSquare(0)},
			{ID: 2, Geometry: unitSquare(1)},
			{ID: 3, Geometry: unitSquare(2)},
			{ID: 99, Geometry: unitSquare(3)},
		},
	}
}

func TestBuildJoinsByKey(t *testing.T) {
	m, err := Build(sampleDataset(), four)
	require.NoError(t, err)
	require.Len(t, m.Counties, 4)

	west := m.Counties[0]
	assert.True(t, west.Matched)
	assert.Equal(t, "West County", west.Record.RegionName)
	assert.Equal(t, 0, west.Bucket)
	assert.Equal(t, four[0], west.Fill)

	east := m.Counties[1]
	assert.Equal(t, 3, east.Bucket)
	assert.Equal(t, four[3], east.Fill)

	middle := m.Counties[2]
	assert.Equal(t, four[2], middle.Fill)
}

func TestBuildUnmatchedFeatureHasNoFill(t *testing.T) {
	m, err := Build(sampleDataset(), four)
	require.NoError(t, err)

	orphan := m.Counties[3]
	assert.False(t, orphan.Matched)
	assert.Empty(t, orphan.Fill)
	assert.Equal(t, -1, orphan.Bucket)
	assert.Equal(t, 99, orphan.Feature.ID)
}

func TestSummary(t *testing.T) {
	m, err := Build(sampleDataset(), four)
	require.NoError(t, err)

	s := m.Summary()
	assert.Equal(t, 4, s.Features)
	assert.Equal(t, 4, s.Records)
	assert.Equal(t, 3, s.Matched)
	assert.Equal(t, 1, s.Unmatched)
	assert.Equal(t, 1, s.RecordsWithout)
	assert.Equal(t, 0, s.Duplicates)
	assert.InDelta(t, 10.0, s.Min, 0)
	assert.InDelta(t, 90.0, s.Max, 0)
	assert.False(t, s.Degenerate)
	assert.Equal(t, []int{1, 0, 1, 1}, s.BucketCounts)
	assert.Equal(t, 3, s.DistinctColors)
}

func TestSummaryIsCopy(t *testing.T) {
	m, err := Build(sampleDataset(), four)
	require.NoError(t, err)

	s := m.Summary()
	s.BucketCounts[0] = 100
	assert.Equal(t, 1, m.Summary().BucketCounts[0])
}

func TestBuildEmptyRecords(t *testing.T) {
	ds := &dataset.Dataset{Features: []model.Feature{{ID: 1, Geometry: unitSquare(0)}}}

	m, err := Build(ds, four)
	require.NoError(t, err)
	assert.True(t, m.Classifier.Degenerate())
	assert.False(t, m.Counties[0].Matched)
	assert.Equal(t, four[0], m.Classifier.Classify(42))
}

func TestBuildInvalidPalette(t *testing.T) {
	_, err := Build(sampleDataset(), palette.Palette{"#000000"})
	assert.Error(t, err)
}

func TestBuildDuplicates(t *testing.T) {
	ds := sampleDataset()
	ds.Records = append(ds.Records, model.Record{Key: 1, RegionName: "West County", RegionGroup: "AL", Value: 12})

	m, err := Build(ds, four)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Summary().Duplicates)
	assert.InDelta(t, 12.0, m.Counties[0].Record.Value, 0)
}

func TestTooltip(t *testing.T) {
	rec := model.Record{Key: 1001, RegionName: "Autauga County", RegionGroup: "AL", Value: 21.9}
	assert.Equal(t, "Autauga County, AL: 21.9%", Tooltip(rec))

	rec.Value = 30
	assert.Equal(t, "Autauga County, AL: 30%", Tooltip(rec))
}
