package collector

import (
	"context"
	"path/filepath"
	"strings"

	"VolumeProfile/internal/model"
)

// Source defines the interface for loading a price/volume series.
type Source interface {
	Load(ctx context.Context) (*model.Series, error)
	Name() string
}

// NewSource picks a file source by extension: .xlsx workbooks go through
// XLSXSource, everything else is read as CSV.
func NewSource(path string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return &XLSXSource{Path: path}
	default:
		return &CSVSource{Path: path}
	}
}

// FromBars extracts the close and volume columns of bars into a Series.
func FromBars(symbol string, bars []model.OHLCV) *model.Series {
	s := &model.Series{
		Symbol: symbol,
		Close:  make([]float64, len(bars)),
		Volume: make([]float64, len(bars)),
	}
	for i, b := range bars {
		s.Close[i] = b.Close
		s.Volume[i] = b.Volume
	}
	return s
}

func symbolFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
