package calculator

import (
	"math"

	"golang.org/x/sync/errgroup"

	"VolumeProfile/internal/model"
)

// ComputeVolumeProfile builds, for every position i of the series, the volume
// histogram of the trailing window closes[i-Window:i] and its point of control.
// Positions before the first full window are nil in both outputs.
//
// Bucket width comes from the price range of the whole series, so every
// window shares the same bucket boundaries. Positions are computed in
// parallel; the result is identical for any worker count.
func ComputeVolumeProfile(closes, volumes []float64, p Params) (*model.VolumeProfile, error) {
	if err := p.Validate(closes, volumes); err != nil {
		return nil, err
	}

	low, high, err := PriceRange(closes)
	if err != nil {
		return nil, err
	}
	layout := NewBucketLayout(p.Layout, low, high, p.Bins)
	if math.IsInf(layout.Width, 0) {
		return nil, invalid(ErrPriceRange, "close", high-low,
			"spans %v .. %v, whose bucket width overflows float64", low, high)
	}

	n := len(closes)
	out := &model.VolumeProfile{
		PointOfControl: make([]*float64, n),
		Histograms:     make([]*model.Histogram, n),
		Bins:           p.Bins,
		Window:         p.Window,
		Low:            low,
		High:           high,
		BinWidth:       layout.Width,
	}

	scan := func(from, to int) {
		for i := from; i < to; i++ {
			h := BuildHistogram(closes[i-p.Window:i], volumes[i-p.Window:i], layout)
			out.Histograms[i] = h
			if poc, ok := PointOfControl(h); ok {
				out.PointOfControl[i] = &poc
			}
		}
	}

	// Each chunk owns a disjoint index range of the output slices.
	workers := p.workers()
	first := p.Window
	chunk := (n - first + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for from := first; from < n; from += chunk {
		from, to := from, min(from+chunk, n)
		g.Go(func() error {
			scan(from, to)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
