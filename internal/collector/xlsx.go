package collector

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"VolumeProfile/internal/model"
)

// XLSXSource reads a series from an Excel workbook. The first row of the
// sheet is the header.
type XLSXSource struct {
	Path         string
	Sheet        string // first sheet when empty
	CloseColumn  string
	VolumeColumn string
}

func (s *XLSXSource) Name() string { return "xlsx:" + s.Path }

func (s *XLSXSource) Load(ctx context.Context) (*model.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", s.Path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	series, err := parseTable(s.Path+":"+sheet, rows, s.CloseColumn, s.VolumeColumn)
	if err != nil {
		return nil, err
	}
	series.Symbol = symbolFromPath(s.Path)
	return series, nil
}
