package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"VolumeProfile/internal/model"
)

// CSVSource reads a series from a CSV file with a header row.
type CSVSource struct {
	Path         string
	CloseColumn  string // defaults to "close"
	VolumeColumn string // defaults to "volume"
}

func (s *CSVSource) Name() string { return "csv:" + s.Path }

func (s *CSVSource) Load(ctx context.Context) (*model.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", s.Path, err)
	}
	series, err := parseTable(s.Path, rows, s.CloseColumn, s.VolumeColumn)
	if err != nil {
		return nil, err
	}
	series.Symbol = symbolFromPath(s.Path)
	return series, nil
}
