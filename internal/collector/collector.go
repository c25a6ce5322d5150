package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"VolumeProfile/internal/calculator"
	"VolumeProfile/internal/model"
)

// MockSource returns deterministic synthetic bars for development and testing.
type MockSource struct {
	Symbol string
	Price  float64
	Count  int
	Bars   []model.OHLCV // used as-is when set
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Load(_ context.Context) (*model.Series, error) {
	bars := m.Bars
	if bars == nil {
		bars = generateMockBars(m.Price, m.Count)
	}
	return FromBars(m.Symbol, bars), nil
}

// generateMockBars draws a slow zig-zag around basePrice so that volume
// piles up at a few recurring levels.
func generateMockBars(basePrice float64, count int) []model.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		step := float64(i%20 - 10)
		if (i/20)%2 == 1 {
			step = -step
		}
		p := basePrice * (1 + step*0.002)
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000 + float64(i%7)*250,
		}
	}
	return bars
}

// Snapshot is one computed profile together with where it came from.
type Snapshot struct {
	Source     string
	Symbol     string
	Params     calculator.Params
	Profile    *model.VolumeProfile
	ComputedAt time.Time
	Elapsed    time.Duration
}

// Collector loads a series from its Source and computes the volume profile.
type Collector struct {
	Source Source
	Params calculator.Params
}

// NewCollector creates a new Collector.
func NewCollector(src Source, params calculator.Params) *Collector {
	return &Collector{Source: src, Params: params}
}

// Collect loads the series and computes its volume profile.
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	series, err := c.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load series from %s: %w", c.Source.Name(), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug().
		Str("source", c.Source.Name()).
		Str("symbol", series.Symbol).
		Int("samples", series.Len()).
		Msg("series loaded")

	start := time.Now()
	profile, err := calculator.ComputeVolumeProfile(series.Close, series.Volume, c.Params)
	if err != nil {
		return nil, fmt.Errorf("compute volume profile: %w", err)
	}
	elapsed := time.Since(start)

	log.Info().
		Str("symbol", series.Symbol).
		Int("bins", c.Params.Bins).
		Int("window", c.Params.Window).
		Int("defined", profile.Defined()).
		Dur("elapsed", elapsed).
		Msg("volume profile computed")

	return &Snapshot{
		Source:     c.Source.Name(),
		Symbol:     series.Symbol,
		Params:     c.Params,
		Profile:    profile,
		ComputedAt: start,
		Elapsed:    elapsed,
	}, nil
}
