// Package classify partitions a statistic range into equal-width color
// buckets and maps values to colors and colors back to value intervals.
package classify

import (
	"math"

	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/palette"
)

// Classifier is a quantize scale over [min, max] with one bucket per
// palette color. It is immutable after New.
type Classifier struct {
	palette    palette.Palette
	min        float64
	max        float64
	degenerate bool
	// edges[i] is the smallest value that lands in bucket i or above;
	// edges[0] = min and edges[n] = max.
	edges []float64
}

// New builds a Classifier over the finite values. An empty value set or a
// zero-width range yields a single-bucket classifier that always returns
// the first palette color.
func New(values []float64, pal palette.Palette) (*Classifier, error) {
	if err := pal.Validate(); err != nil {
		return nil, err
	}

	c := &Classifier{palette: make(palette.Palette, len(pal))}
	copy(c.palette, pal)

	finite := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if finite == 0 || v < c.min {
			c.min = v
		}
		if finite == 0 || v > c.max {
			c.max = v
		}
		finite++
	}

	if finite == 0 || c.min == c.max {
		c.degenerate = true
		c.edges = []float64{c.min, c.max}
		return c, nil
	}

	c.edges = c.computeEdges()
	return c, nil
}

// computeEdges places each interior bucket edge on the exact float where
// Bucket switches, so intervals returned by Invert agree with Classify
// under floating-point rounding.
func (c *Classifier) computeEdges() []float64 {
	n := len(c.palette)
	edges := make([]float64, n+1)
	edges[0] = c.min
	edges[n] = c.max

	up, down := math.Inf(1), math.Inf(-1)
	for i := 1; i < n; i++ {
		t := c.min + (c.max-c.min)*float64(i)/float64(n)
		t = math.Max(c.min, math.Min(c.max, t))
		for t < c.max && c.Bucket(t) < i {
			t = math.Nextafter(t, up)
		}
		for t > c.min && c.Bucket(math.Nextafter(t, down)) >= i {
			t = math.Nextafter(t, down)
		}
		edges[i] = t
	}
	return edges
}

// Bucket returns the bucket index for v in [0, n-1]. Values outside the
// domain clamp to the end buckets; NaN maps to bucket 0.
func (c *Classifier) Bucket(v float64) int {
	if c.degenerate || math.IsNaN(v) {
		return 0
	}
	n := len(c.palette)
	f := math.Floor((v - c.min) / (c.max - c.min) * float64(n))
	switch {
	case f < 0:
		return 0
	case f >= float64(n-1):
		return n - 1
	default:
		return int(f)
	}
}

// Classify returns the palette color for v.
func (c *Classifier) Classify(v float64) string {
	return c.palette[c.Bucket(v)]
}

// Invert returns the interval of values that classify to color. The last
// bucket's interval is closed so it covers the domain maximum. The boolean
// is false when color is not in the palette or no value maps to it.
func (c *Classifier) Invert(color string) (model.Interval, bool) {
	i := c.palette.Index(color)
	if i < 0 {
		return model.Interval{}, false
	}
	return c.Interval(i)
}

// Interval returns the value interval of bucket i.
func (c *Classifier) Interval(i int) (model.Interval, bool) {
	if i < 0 || i >= c.Buckets() {
		return model.Interval{}, false
	}
	last := i == c.Buckets()-1
	return model.Interval{
		Low:    c.edges[i],
		High:   c.edges[i+1],
		Closed: last,
	}, true
}

// Intervals returns the interval of every bucket in palette order.
func (c *Classifier) Intervals() []model.Interval {
	out := make([]model.Interval, 0, c.Buckets())
	for i := 0; i < c.Buckets(); i++ {
		iv, _ := c.Interval(i)
		out = append(out, iv)
	}
	return out
}

// Ticks returns the legend tick values: every bucket's lower edge followed
// by the last bucket's upper edge, Buckets()+1 values in total.
func (c *Classifier) Ticks() []float64 {
	var ticks []float64
	for i, color := range c.Colors() {
		iv, _ := c.Invert(color)
		ticks = append(ticks, iv.Low)
		if i == c.Buckets()-1 {
			ticks = append(ticks, iv.High)
		}
	}
	return ticks
}

// Colors returns the colors in use, one per bucket.
func (c *Classifier) Colors() palette.Palette {
	out := make(palette.Palette, c.Buckets())
	copy(out, c.palette)
	return out
}

// Palette returns the full configured palette.
func (c *Classifier) Palette() palette.Palette {
	out := make(palette.Palette, len(c.palette))
	copy(out, c.palette)
	return out
}

// Buckets returns the number of buckets: the palette length, or 1 for a
// degenerate domain.
func (c *Classifier) Buckets() int {
	if c.degenerate {
		return 1
	}
	return len(c.palette)
}

// Domain returns the observed [min, max].
func (c *Classifier) Domain() (float64, float64) {
	return c.min, c.max
}

// Degenerate reports whether the classifier collapsed to a single bucket.
func (c *Classifier) Degenerate() bool {
	return c.degenerate
}
