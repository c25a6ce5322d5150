package calculator

import "VolumeProfile/internal/model"

// PointOfControl returns the middle price of the bucket with the largest
// volume. Buckets are scanned from the lowest price up and the first
// maximal one wins ties. ok is false for an empty histogram.
func PointOfControl(h *model.Histogram) (middle float64, ok bool) {
	if h == nil || h.Len() == 0 {
		return 0, false
	}
	buckets := h.Buckets()
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.Volume > best.Volume {
			best = b
		}
	}
	return best.Middle, true
}
