package choropleth

import (
	"github.com/sells-group/edu-choropleth/internal/model"
)

// Row is one statistic record with its classification, in key order.
type Row struct {
	Record   model.Record   `json:"record"`
	Bucket   int            `json:"bucket"`
	Color    string         `json:"color"`
	Interval model.Interval `json:"interval"`
	Plotted  bool           `json:"plotted"`
}

// Rows classifies every record, including those with no geometry.
func (m *Map) Rows() []Row {
	keys := m.Index.Keys()
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		rec, _ := m.Index.Lookup(k)
		rows = append(rows, m.classifyRecord(rec, m.plotted[k]))
	}
	return rows
}

// Row looks up one key. The boolean is false when no record has the key.
func (m *Map) Row(key int) (Row, bool) {
	rec, ok := m.Index.Lookup(key)
	if !ok {
		return Row{}, false
	}
	return m.classifyRecord(rec, m.plotted[key]), true
}

func (m *Map) classifyRecord(rec model.Record, plotted bool) Row {
	b := m.Classifier.Bucket(rec.Value)
	iv, _ := m.Classifier.Interval(b)
	return Row{
		Record:   rec,
		Bucket:   b,
		Color:    m.Classifier.Classify(rec.Value),
		Interval: iv,
		Plotted:  plotted,
	}
}
