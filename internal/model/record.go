// Package model defines the shared data types for statistic records,
// geographic features and bucket intervals.
package model

import (
	"github.com/twpayne/go-geom"
)

// Record is one region's educational attainment statistic.
type Record struct {
	Key         int     `json:"fips"`
	RegionName  string  `json:"area_name"`
	RegionGroup string  `json:"state"`
	Value       float64 `json:"bachelorsOrHigher"`
}

// Feature is a region outline carrying the identifier of its Record.
type Feature struct {
	ID       int
	Geometry *geom.MultiPolygon
}

// Interval is the value range covered by one color bucket.
// Low is always inclusive; High is inclusive only when Closed is set.
type Interval struct {
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Closed bool    `json:"closed"`
}

// Contains reports whether v falls inside the interval.
func (iv Interval) Contains(v float64) bool {
	if v < iv.Low {
		return false
	}
	if iv.Closed {
		return v <= iv.High
	}
	return v < iv.High
}

// Width returns High - Low.
func (iv Interval) Width() float64 {
	return iv.High - iv.Low
}
