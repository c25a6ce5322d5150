package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series holds index-aligned close prices and traded volumes.
// Sample i is the pair (Close[i], Volume[i]).
type Series struct {
	Symbol string
	Close  []float64
	Volume []float64
}

// Len returns the number of close samples.
func (s *Series) Len() int { return len(s.Close) }
