package calculator

import (
	"errors"
	"math"
)

// PriceRange scans the whole series and returns its lowest and highest price.
func PriceRange(closes []float64) (low, high float64, err error) {
	if len(closes) == 0 {
		return 0, 0, errors.New("no prices provided")
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, c := range closes {
		if c < low {
			low = c
		}
		if c > high {
			high = c
		}
	}
	return low, high, nil
}
