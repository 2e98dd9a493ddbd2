package projfactors

import "math"

// Band is a dense two-dimensional array of one metric, row-major with the
// top canvas row first, one value per grid point. Cells without a valid
// measurement hold the NaN nodata sentinel.
type Band struct {
	width  int
	height int
	data   []float64
}

// NewBand creates a band filled with the nodata sentinel.
func NewBand(width, height int) *Band {
	data := make([]float64, width*height)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Band{width: width, height: height, data: data}
}

// Width returns the band width in cells.
func (b *Band) Width() int { return b.width }

// Height returns the band height in cells.
func (b *Band) Height() int { return b.height }

// At returns the value at column col of row row.
// Out-of-bounds coordinates return NaN.
func (b *Band) At(col, row int) float64 {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		return math.NaN()
	}
	return b.data[row*b.width+col]
}

// Data returns the raw row-major values. The slice is shared, not copied.
func (b *Band) Data() []float64 { return b.data }

// BandSet holds one Band per factor metric, all with identical dimensions.
// It is filled incrementally by Scatter and read-only afterwards.
type BandSet struct {
	width  int
	height int
	bands  []*Band // indexed like Metrics
}

// NewBandSet creates a band set with one nodata-filled band per metric.
func NewBandSet(width, height int) *BandSet {
	bands := make([]*Band, len(Metrics))
	for i := range bands {
		bands[i] = NewBand(width, height)
	}
	return &BandSet{width: width, height: height, bands: bands}
}

// Width returns the set width in cells.
func (bs *BandSet) Width() int { return bs.width }

// Height returns the set height in cells.
func (bs *BandSet) Height() int { return bs.height }

// Scatter writes one factor record into every band at grid index i.
// A nil record marks a failed point: every band keeps the nodata sentinel
// at that index so band indices never drift from grid positions.
func (bs *BandSet) Scatter(i int, rec *FactorRecord) {
	if i < 0 || i >= bs.width*bs.height {
		return
	}
	for bi, m := range Metrics {
		if rec == nil {
			bs.bands[bi].data[i] = math.NaN()
			continue
		}
		bs.bands[bi].data[i] = rec.Value(m.ID)
	}
}

// Band returns the band for a metric ID, nil if the ID is unknown.
func (bs *BandSet) Band(id string) *Band {
	for i, m := range Metrics {
		if m.ID == id {
			return bs.bands[i]
		}
	}
	return nil
}

// Bands returns all bands in band order. The slice is shared, not copied.
func (bs *BandSet) Bands() []*Band { return bs.bands }
