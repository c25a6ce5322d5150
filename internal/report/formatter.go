package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"VolumeProfile/internal/collector"
	"VolumeProfile/internal/model"
)

// Options controls the text summary.
type Options struct {
	Precision int32 // decimal places for prices
	Tail      int   // number of trailing positions to print in detail
}

// FormatSummary formats a computed profile as a plain-text report.
func FormatSummary(snap *collector.Snapshot, opts Options) string {
	vp := snap.Profile
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Volume profile | %s (%s) | %s\n\n",
		snap.Symbol, snap.Source, snap.ComputedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("bins: %d | window: %d | layout: %s\n", vp.Bins, vp.Window, snap.Params.Layout))
	b.WriteString(fmt.Sprintf("price range: %s .. %s | bin width: %s\n",
		price(vp.Low, opts.Precision), price(vp.High, opts.Precision), price(vp.BinWidth, opts.Precision)))
	b.WriteString(fmt.Sprintf("positions: %d | defined: %d | elapsed: %s\n", vp.Len(), vp.Defined(), snap.Elapsed))

	if vp.Defined() == 0 {
		b.WriteString("\nnot enough history for a full window\n")
		return b.String()
	}

	from := vp.Len() - opts.Tail
	if from < vp.Window {
		from = vp.Window
	}
	for i := from; i < vp.Len(); i++ {
		b.WriteString("\n")
		b.WriteString(FormatPosition(vp, i, opts.Precision))
	}
	return b.String()
}

// FormatPosition renders the point of control and histogram of position i.
func FormatPosition(vp *model.VolumeProfile, i int, precision int32) string {
	var b strings.Builder
	h := vp.Histograms[i]
	if h == nil {
		b.WriteString(fmt.Sprintf("#%d: undefined\n", i))
		return b.String()
	}
	poc := "undefined"
	if p := vp.PointOfControl[i]; p != nil {
		poc = price(*p, precision)
	}
	b.WriteString(fmt.Sprintf("#%d: point of control %s\n", i, poc))

	total := h.TotalVolume()
	for _, bk := range h.Buckets() {
		marker := " "
		if vp.PointOfControl[i] != nil && bk.Middle == *vp.PointOfControl[i] {
			marker = "*"
		}
		share := 0.0
		if total > 0 {
			share = bk.Volume / total * 100
		}
		b.WriteString(fmt.Sprintf("  %s %-28s mid %-14s vol %-14s %5.1f%%\n",
			marker, label(bk.Interval, precision), price(bk.Middle, precision),
			decimal.NewFromFloat(bk.Volume).String(), share))
	}
	return b.String()
}

func price(f float64, precision int32) string {
	return decimal.NewFromFloat(f).Round(precision).String()
}

func label(iv model.Interval, precision int32) string {
	closing := ")"
	if iv.Closed {
		closing = "]"
	}
	return "[" + price(iv.Lower, precision) + ", " + price(iv.Upper, precision) + closing
}
