// Package stats indexes statistic records by region key.
package stats

import (
	"sort"

	"github.com/sells-group/edu-choropleth/internal/model"
)

// Index maps a region key to its statistic record. It is built once and
// never mutated, so concurrent readers need no locking.
type Index struct {
	byKey      map[int]model.Record
	values     []float64
	duplicates int
}

// NewIndex builds an Index from records. When a key repeats, the later
// record wins.
func NewIndex(records []model.Record) *Index {
	idx := &Index{
		byKey:  make(map[int]model.Record, len(records)),
		values: make([]float64, 0, len(records)),
	}
	for _, rec := range records {
		if _, ok := idx.byKey[rec.Key]; ok {
			idx.duplicates++
		}
		idx.byKey[rec.Key] = rec
	}
	// Values follow first-seen key order so the classifier domain matches
	// the deduplicated record set.
	seen := make(map[int]bool, len(idx.byKey))
	for _, rec := range records {
		if seen[rec.Key] {
			continue
		}
		seen[rec.Key] = true
		idx.values = append(idx.values, idx.byKey[rec.Key].Value)
	}
	return idx
}

// Lookup returns the record for key. The boolean is false when no record
// has that key.
func (i *Index) Lookup(key int) (model.Record, bool) {
	rec, ok := i.byKey[key]
	return rec, ok
}

// Len returns the number of distinct keys.
func (i *Index) Len() int {
	return len(i.byKey)
}

// Duplicates returns how many input records were overwritten by a later
// record with the same key.
func (i *Index) Duplicates() int {
	return i.duplicates
}

// Values returns one value per distinct key. The returned slice is a copy.
func (i *Index) Values() []float64 {
	out := make([]float64, len(i.values))
	copy(out, i.values)
	return out
}

// Keys returns all keys in ascending order.
func (i *Index) Keys() []int {
	keys := make([]int, 0, len(i.byKey))
	for k := range i.byKey {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
