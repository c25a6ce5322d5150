package report

import (
	"encoding/json"
	"io"

	"VolumeProfile/internal/collector"
	"VolumeProfile/internal/model"
)

type profileDoc struct {
	Symbol         string             `json:"symbol"`
	Source         string             `json:"source"`
	Bins           int                `json:"bins"`
	Window         int                `json:"window"`
	Layout         string             `json:"layout"`
	Low            float64            `json:"low"`
	High           float64            `json:"high"`
	BinWidth       float64            `json:"bin_width"`
	PointOfControl []*float64         `json:"point_of_control"`
	Histograms     []*model.Histogram `json:"histograms"`
}

// WriteJSON encodes the full position-aligned profile. Undefined positions
// are null; histograms map interval labels to [lower, upper, middle, volume].
func WriteJSON(w io.Writer, snap *collector.Snapshot) error {
	vp := snap.Profile
	enc := json.NewEncoder(w)
	return enc.Encode(profileDoc{
		Symbol:         snap.Symbol,
		Source:         snap.Source,
		Bins:           vp.Bins,
		Window:         vp.Window,
		Layout:         snap.Params.Layout.String(),
		Low:            vp.Low,
		High:           vp.High,
		BinWidth:       vp.BinWidth,
		PointOfControl: vp.PointOfControl,
		Histograms:     vp.Histograms,
	})
}
