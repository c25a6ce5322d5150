package collector

import (
	"fmt"
	"strconv"
	"strings"

	"VolumeProfile/internal/model"
)

const (
	defaultCloseColumn  = "close"
	defaultVolumeColumn = "volume"
)

// parseTable turns header + data rows into a Series. Column names are
// matched case-insensitively; blank rows are skipped.
func parseTable(origin string, rows [][]string, closeCol, volumeCol string) (*model.Series, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no header row", origin)
	}
	if closeCol == "" {
		closeCol = defaultCloseColumn
	}
	if volumeCol == "" {
		volumeCol = defaultVolumeColumn
	}
	ci, err := columnIndex(rows[0], closeCol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", origin, err)
	}
	vi, err := columnIndex(rows[0], volumeCol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", origin, err)
	}

	s := &model.Series{}
	for r, row := range rows[1:] {
		if blank(row) {
			continue
		}
		line := r + 2 // 1-based, after the header
		c, err := cell(row, ci)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d column %q: %w", origin, line, closeCol, err)
		}
		v, err := cell(row, vi)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d column %q: %w", origin, line, volumeCol, err)
		}
		s.Close = append(s.Close, c)
		s.Volume = append(s.Volume, v)
	}
	return s, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %v", name, header)
}

func cell(row []string, i int) (float64, error) {
	if i >= len(row) {
		return 0, fmt.Errorf("missing value")
	}
	raw := strings.ReplaceAll(strings.TrimSpace(row[i]), ",", "")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", row[i], err)
	}
	return f, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
