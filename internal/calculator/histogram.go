package calculator

import (
	"fmt"

	"VolumeProfile/internal/model"
)

// BuildHistogram accumulates the volume of one window into buckets.
// Every sample goes to the first bucket that contains its price; buckets
// that receive no sample are left out of the result.
//
// The two slices must have the same length. A mismatch is a bug in the
// caller and panics.
func BuildHistogram(closes, volumes []float64, layout BucketLayout) *model.Histogram {
	if len(closes) != len(volumes) {
		panic(fmt.Sprintf("calculator: histogram slices differ in length (%d closes, %d volumes)",
			len(closes), len(volumes)))
	}

	acc := make([]float64, layout.Bins+1)
	hit := make([]bool, layout.Bins+1)
	touched := 0
	for i, p := range closes {
		n, ok := layout.Locate(p)
		if !ok {
			continue
		}
		if !hit[n] {
			hit[n] = true
			acc[n] = volumes[i]
			touched++
			continue
		}
		acc[n] += volumes[i]
	}

	buckets := make([]model.Bucket, 0, touched)
	for n := 1; n <= layout.Bins; n++ {
		if hit[n] {
			buckets = append(buckets, layout.Bucket(n, acc[n]))
		}
	}
	return model.NewHistogram(buckets)
}
