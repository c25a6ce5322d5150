package calculator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VolumeProfile/internal/model"
)

func TestBucketLayout_Bounds(t *testing.T) {
	l := NewBucketLayout(LayoutPriceRange, 1, 10, 2)
	assert.Equal(t, model.Interval{Lower: 1, Upper: 5.5}, l.Bounds(1))
	assert.Equal(t, model.Interval{Lower: 5.5, Upper: 10, Closed: true}, l.Bounds(2))

	o := NewBucketLayout(LayoutOrigin, 1, 10, 2)
	assert.Equal(t, model.Interval{Lower: 4.5, Upper: 9}, o.Bounds(1))
	assert.Equal(t, model.Interval{Lower: 9, Upper: 13.5, Closed: true}, o.Bounds(2))
}

func TestBucketLayout_Locate(t *testing.T) {
	l := NewBucketLayout(LayoutPriceRange, 0, 10, 4)
	tests := []struct {
		price float64
		want  int
		ok    bool
	}{
		{0, 1, true},
		{2.49, 1, true},
		{2.5, 2, true}, // lower edge belongs to the upper bucket
		{7.5, 4, true},
		{10, 4, true}, // maximum captured by the closed last bucket
		{-0.1, 0, false},
		{10.1, 0, false},
	}
	for _, tt := range tests {
		n, ok := l.Locate(tt.price)
		assert.Equal(t, tt.ok, ok, "price %v", tt.price)
		assert.Equal(t, tt.want, n, "price %v", tt.price)
	}
}

func TestBucketLayout_LocateMatchesLinearScan(t *testing.T) {
	layouts := []BucketLayout{
		NewBucketLayout(LayoutPriceRange, 1, 10, 2),
		NewBucketLayout(LayoutPriceRange, -3.7, 91.3, 17),
		NewBucketLayout(LayoutPriceRange, 0.1, 0.7, 1000),
		NewBucketLayout(LayoutPriceRange, 1e16, 1e16+2, 100), // width below one ulp of Low
		NewBucketLayout(LayoutPriceRange, 5, 5, 3),           // zero width
		NewBucketLayout(LayoutOrigin, 1, 10, 2),
		NewBucketLayout(LayoutOrigin, 12.5, 480, 33),
	}
	r := rand.New(rand.NewSource(3))
	for _, l := range layouts {
		var prices []float64
		for n := 1; n <= l.Bins; n++ {
			iv := l.Bounds(n)
			for _, edge := range []float64{iv.Lower, iv.Upper} {
				prices = append(prices, edge, math.Nextafter(edge, math.Inf(-1)), math.Nextafter(edge, math.Inf(1)))
			}
		}
		span := l.High - l.Low
		for i := 0; i < 500; i++ {
			prices = append(prices, l.Low-span*0.1+r.Float64()*span*1.2)
		}
		for _, p := range prices {
			wantN, wantOK := l.scan(p)
			gotN, gotOK := l.Locate(p)
			assert.Equal(t, wantOK, gotOK, "layout %+v price %v", l, p)
			assert.Equal(t, wantN, gotN, "layout %+v price %v", l, p)
		}
	}
}

func TestBucketLayout_FirstBucketStartsAtLow(t *testing.T) {
	l := NewBucketLayout(LayoutPriceRange, -2.5, 7.25, 9)
	assert.Equal(t, -2.5, l.Bounds(1).Lower)
	assert.Equal(t, 7.25, l.Bounds(9).Upper)
}

func TestBuildHistogram(t *testing.T) {
	l := NewBucketLayout(LayoutPriceRange, 0, 10, 4)
	h := BuildHistogram(
		[]float64{1, 2, 9, 10, 2.5},
		[]float64{3, 4, 5, 6, 7},
		l,
	)

	require.Equal(t, 3, h.Len())
	buckets := h.Buckets()
	assert.Equal(t, []int{1, 2, 4}, []int{buckets[0].Index, buckets[1].Index, buckets[2].Index})
	assert.Equal(t, 7.0, buckets[0].Volume)
	assert.Equal(t, 7.0, buckets[1].Volume)
	assert.Equal(t, 11.0, buckets[2].Volume)
	assert.Equal(t, 1.25, buckets[0].Middle)
	assert.Equal(t, 25.0, h.TotalVolume())
}

func TestBuildHistogram_LengthMismatchPanics(t *testing.T) {
	l := NewBucketLayout(LayoutPriceRange, 0, 10, 4)
	assert.Panics(t, func() {
		BuildHistogram([]float64{1, 2}, []float64{1}, l)
	})
}

func TestPointOfControl(t *testing.T) {
	l := NewBucketLayout(LayoutPriceRange, 0, 10, 4)

	h := model.NewHistogram([]model.Bucket{l.Bucket(1, 5), l.Bucket(3, 9), l.Bucket(4, 2)})
	poc, ok := PointOfControl(h)
	require.True(t, ok)
	assert.Equal(t, 6.25, poc)

	// ties resolve to the lowest bucket
	tied := model.NewHistogram([]model.Bucket{l.Bucket(1, 9), l.Bucket(2, 4), l.Bucket(4, 9)})
	poc, ok = PointOfControl(tied)
	require.True(t, ok)
	assert.Equal(t, 1.25, poc)

	_, ok = PointOfControl(model.NewHistogram(nil))
	assert.False(t, ok)
	_, ok = PointOfControl(nil)
	assert.False(t, ok)
}

func TestPriceRange(t *testing.T) {
	low, high, err := PriceRange([]float64{3, -1, 7, 2})
	require.NoError(t, err)
	assert.Equal(t, -1.0, low)
	assert.Equal(t, 7.0, high)

	_, _, err = PriceRange(nil)
	assert.Error(t, err)
}
