package calculator

import (
	"fmt"
	"math"
	"runtime"
	"strings"
)

const (
	DefaultBins   = 100
	DefaultWindow = 255
)

// Layout selects how bucket boundaries are placed on the price axis.
type Layout int

const (
	// LayoutPriceRange anchors bucket 1 at the series minimum so the
	// buckets partition [min, max] exactly.
	LayoutPriceRange Layout = iota
	// LayoutOrigin anchors bucket n at n*width from zero. Prices below
	// one bin width or above (bins+1) widths fall into no bucket.
	LayoutOrigin
)

func (l Layout) String() string {
	switch l {
	case LayoutPriceRange:
		return "range"
	case LayoutOrigin:
		return "origin"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout maps "range" or "origin" to a Layout. Empty means range.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "range":
		return LayoutPriceRange, nil
	case "origin":
		return LayoutOrigin, nil
	default:
		return 0, fmt.Errorf("unknown bucket layout %q", s)
	}
}

// Params configures a volume profile computation.
type Params struct {
	Bins    int
	Window  int
	Layout  Layout
	Workers int // <= 0 means GOMAXPROCS
}

// DefaultParams returns 100 bins over a 255-sample window.
func DefaultParams() Params {
	return Params{
		Bins:   DefaultBins,
		Window: DefaultWindow,
		Layout: LayoutPriceRange,
	}
}

// ParamsFromFloat builds Params from loosely typed numeric arguments,
// rejecting values that are not positive whole numbers.
func ParamsFromFloat(bins, window float64) (Params, error) {
	p := DefaultParams()
	b, err := wholeNumber("bins", bins, ErrInvalidBins)
	if err != nil {
		return p, err
	}
	w, err := wholeNumber("window", window, ErrInvalidWindow)
	if err != nil {
		return p, err
	}
	p.Bins, p.Window = b, w
	return p, nil
}

func wholeNumber(field string, v float64, sentinel error) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, invalid(sentinel, field, v, "must be integer")
	}
	if v <= 0 {
		return 0, invalid(sentinel, field, v, "must be greater than 0")
	}
	if v > math.MaxInt32 {
		return 0, invalid(sentinel, field, v, "must be at most %d", math.MaxInt32)
	}
	return int(v), nil
}

func (p Params) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Validate checks the parameters against a series of closes and volumes.
func (p Params) Validate(closes, volumes []float64) error {
	if p.Bins <= 0 {
		return invalid(ErrInvalidBins, "bins", float64(p.Bins), "must be greater than 0")
	}
	if p.Window <= 0 {
		return invalid(ErrInvalidWindow, "window", float64(p.Window), "must be greater than 0")
	}
	if len(closes) != len(volumes) {
		return invalid(ErrLengthMismatch, "close", float64(len(closes)),
			"must share the same length with argument `volume` (%d)", len(volumes))
	}
	if p.Window > len(closes) {
		return invalid(ErrInvalidWindow, "window", float64(p.Window),
			"must not exceed the length of argument `close` (%d)", len(closes))
	}
	if p.Layout != LayoutPriceRange && p.Layout != LayoutOrigin {
		return fmt.Errorf("unknown bucket layout %v", p.Layout)
	}
	for i, c := range closes {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return invalid(ErrNonFinitePrice, fmt.Sprintf("close[%d]", i), c, "must be finite")
		}
	}
	for i, v := range volumes {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(ErrNonFiniteVolume, fmt.Sprintf("volume[%d]", i), v, "must be finite")
		}
	}
	return nil
}
