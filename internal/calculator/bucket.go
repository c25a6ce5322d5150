package calculator

import (
	"math"

	"VolumeProfile/internal/model"
)

// BucketLayout holds the boundary math shared by every window of one
// computation: a fixed bucket count and width derived from the global range.
type BucketLayout struct {
	Kind  Layout
	Bins  int
	Low   float64
	High  float64
	Width float64
}

// NewBucketLayout splits [low, high] into bins buckets of equal width.
func NewBucketLayout(kind Layout, low, high float64, bins int) BucketLayout {
	return BucketLayout{
		Kind:  kind,
		Bins:  bins,
		Low:   low,
		High:  high,
		Width: (high - low) / float64(bins),
	}
}

// Bounds returns the interval of bucket n, 1 <= n <= Bins.
// The last bucket is closed on both ends.
func (l BucketLayout) Bounds(n int) model.Interval {
	var lower, upper float64
	switch l.Kind {
	case LayoutOrigin:
		lower = float64(n) * l.Width
		upper = float64(n+1) * l.Width
	default:
		lower = l.Low + float64(n-1)*l.Width
		upper = l.Low + float64(n)*l.Width
		if n == 1 {
			lower = l.Low
		}
		if n == l.Bins {
			// pin to the observed maximum so rounding in n*Width cannot drop it
			upper = l.High
		}
	}
	return model.Interval{Lower: lower, Upper: upper, Closed: n == l.Bins}
}

// Locate returns the first bucket, in ascending order, whose interval holds p.
// The bucket number is estimated from the width and then moved across the
// neighbouring edges, so the cost does not grow with Bins.
func (l BucketLayout) Locate(p float64) (int, bool) {
	n, ok := l.estimate(p)
	if !ok {
		return l.scan(p)
	}
	for n > 1 && p < l.Bounds(n).Lower {
		n--
	}
	for n < l.Bins && p >= l.Bounds(n).Upper {
		n++
	}
	if !l.Bounds(n).Contains(p) {
		return 0, false
	}
	return n, true
}

// estimate guesses the bucket of p, clamped to [1, Bins]. ok is false when
// the width cannot be divided by (zero, infinite or NaN).
func (l BucketLayout) estimate(p float64) (int, bool) {
	if !(l.Width > 0) || math.IsInf(l.Width, 0) {
		return 0, false
	}
	var f float64
	switch l.Kind {
	case LayoutOrigin:
		f = math.Floor(p / l.Width)
	default:
		f = math.Floor((p-l.Low)/l.Width) + 1
	}
	switch {
	case math.IsNaN(f):
		return 0, false
	case f < 1:
		return 1, true
	case f > float64(l.Bins):
		return l.Bins, true
	}
	return int(f), true
}

func (l BucketLayout) scan(p float64) (int, bool) {
	for n := 1; n <= l.Bins; n++ {
		if l.Bounds(n).Contains(p) {
			return n, true
		}
	}
	return 0, false
}

// Bucket builds the record for bucket n carrying volume v.
func (l BucketLayout) Bucket(n int, v float64) model.Bucket {
	iv := l.Bounds(n)
	return model.Bucket{
		Index:    n,
		Interval: iv,
		Middle:   iv.Lower/2 + iv.Upper/2, // halves first so the sum cannot overflow
		Volume:   v,
	}
}
