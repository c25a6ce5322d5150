package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Interval is a bucket's price range. It is half-open [Lower, Upper)
// unless Closed is set, in which case Upper is included.
type Interval struct {
	Lower  float64
	Upper  float64
	Closed bool
}

// Contains reports whether price p falls inside the interval.
func (iv Interval) Contains(p float64) bool {
	if iv.Closed {
		return iv.Lower <= p && p <= iv.Upper
	}
	return iv.Lower <= p && p < iv.Upper
}

// Label renders the interval in bracket notation, e.g. "[1, 5.5)".
func (iv Interval) Label() string {
	closing := ")"
	if iv.Closed {
		closing = "]"
	}
	return "[" + formatFloat(iv.Lower) + ", " + formatFloat(iv.Upper) + closing
}

// Bucket is one populated price bucket of a histogram.
type Bucket struct {
	Index int // 1-based bucket number
	Interval
	Middle float64
	Volume float64
}

// Tuple returns the bucket as [lower, upper, middle, volume].
func (b Bucket) Tuple() [4]float64 {
	return [4]float64{b.Lower, b.Upper, b.Middle, b.Volume}
}

// Histogram maps bucket intervals to their accumulated volume for one window.
// Buckets are kept in ascending Index order; only buckets that received at
// least one sample are present.
type Histogram struct {
	buckets []Bucket
}

// NewHistogram wraps buckets that are already sorted by Index.
func NewHistogram(buckets []Bucket) *Histogram {
	return &Histogram{buckets: buckets}
}

// Len returns the number of populated buckets.
func (h *Histogram) Len() int { return len(h.buckets) }

// Buckets returns the populated buckets in ascending price order.
func (h *Histogram) Buckets() []Bucket {
	out := make([]Bucket, len(h.buckets))
	copy(out, h.buckets)
	return out
}

// Get looks a bucket up by its interval.
func (h *Histogram) Get(iv Interval) (Bucket, bool) {
	for _, b := range h.buckets {
		if b.Interval == iv {
			return b, true
		}
	}
	return Bucket{}, false
}

// TotalVolume sums the volume over all buckets.
func (h *Histogram) TotalVolume() float64 {
	sum := 0.0
	for _, b := range h.buckets {
		sum += b.Volume
	}
	return sum
}

// MarshalJSON encodes the histogram as {label: [lower, upper, middle, volume]}
// with keys in ascending price order.
func (h *Histogram) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range h.buckets {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(b.Label())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b.Tuple())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// VolumeProfile is the position-aligned result of a profile computation.
// A nil entry means the position has no full window of history yet.
type VolumeProfile struct {
	PointOfControl []*float64
	Histograms     []*Histogram
	Bins           int
	Window         int
	Low            float64
	High           float64
	BinWidth       float64
}

// Len returns the number of positions, equal to the input series length.
func (p *VolumeProfile) Len() int { return len(p.PointOfControl) }

// Defined returns how many positions carry a histogram.
func (p *VolumeProfile) Defined() int {
	n := 0
	for _, h := range p.Histograms {
		if h != nil {
			n++
		}
	}
	return n
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
