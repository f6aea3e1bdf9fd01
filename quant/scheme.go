// Package quant implements the interval quantization scheme that maps
// payload symbols onto pixel intensities and back.
//
// The intensity range [0, 255] is split into a low filler band
// [0, fillerMax] reserved for "no data here" pixels, and a data band
// (fillerMax, 255] divided into consecutive intervals of width L. Each
// interval is represented by its anchor, the integer midpoint intensity,
// so a stored value can drift anywhere within its interval and still
// decode to the same symbol.
//
// A Scheme is an immutable value; all methods are pure functions, so a
// single Scheme is safe for concurrent use.
package quant

import (
	"fmt"
	"math/bits"

	"github.com/pixelgram/pxg/errs"
)

// Scheme holds the derived quantization constants for one configuration.
// Create it with New; the zero value is not usable.
type Scheme struct {
	intervalWidth int
	fillerMax     int
	intervalCount int
	bitsPerSymbol int
}

// New validates the configuration and derives the scheme constants.
//
// intervalWidth is the width L of each quantization interval and must be
// at least 1. fillerMax is the highest intensity treated as filler and
// must be in [0, 255). The derived interval count
// ceil((256-(fillerMax+1))/L) must be at least 2, otherwise the scheme
// cannot carry a single payload bit and errs.ErrInvalidConfig is
// returned.
func New(intervalWidth, fillerMax int) (Scheme, error) {
	if intervalWidth < 1 {
		return Scheme{}, fmt.Errorf("%w: interval width %d below 1", errs.ErrInvalidConfig, intervalWidth)
	}
	if fillerMax < 0 || fillerMax > 254 {
		return Scheme{}, fmt.Errorf("%w: filler max %d outside [0, 255)", errs.ErrInvalidConfig, fillerMax)
	}

	dataRange := 256 - (fillerMax + 1)
	intervalCount := (dataRange + intervalWidth - 1) / intervalWidth
	if intervalCount < 2 {
		return Scheme{}, fmt.Errorf("%w: interval count %d cannot carry data", errs.ErrInvalidConfig, intervalCount)
	}

	return Scheme{
		intervalWidth: intervalWidth,
		fillerMax:     fillerMax,
		intervalCount: intervalCount,
		bitsPerSymbol: bits.Len(uint(intervalCount)) - 1,
	}, nil
}

// IntervalWidth returns the configured interval width L.
func (s Scheme) IntervalWidth() int {
	return s.intervalWidth
}

// FillerMax returns the highest intensity treated as filler.
func (s Scheme) FillerMax() int {
	return s.fillerMax
}

// IntervalCount returns the number of quantization intervals in the data
// band.
func (s Scheme) IntervalCount() int {
	return s.intervalCount
}

// BitsPerSymbol returns floor(log2(IntervalCount())), the payload-bit
// capacity of one symbol. Raw symbol values at or above
// 2^BitsPerSymbol() are never produced by encoding but are reduced
// modulo IntervalCount() defensively on decode.
func (s Scheme) BitsPerSymbol() int {
	return s.bitsPerSymbol
}

// Anchor returns the canonical intensity for the given interval index:
// the integer midpoint of the interval, with the final interval clipped
// at 255. The index must be in [0, IntervalCount()).
func (s Scheme) Anchor(index int) uint8 {
	start := s.fillerMax + 1 + index*s.intervalWidth
	end := start + s.intervalWidth - 1
	if end > 255 {
		end = 255
	}

	return uint8(start + (end-start)/2)
}

// IsFiller reports whether the intensity falls in the filler band.
func (s Scheme) IsFiller(value uint8) bool {
	return int(value) <= s.fillerMax
}

// ToSymbol decodes an intensity to its symbol: Filler for values in the
// filler band, otherwise the data symbol of the enclosing interval. The
// final interval may be narrower than L, so an index that lands past the
// end clamps to IntervalCount()-1 instead of erroring.
func (s Scheme) ToSymbol(value uint8) Symbol {
	if s.IsFiller(value) {
		return Filler()
	}

	index := (int(value) - (s.fillerMax + 1)) / s.intervalWidth
	if index >= s.intervalCount {
		index = s.intervalCount - 1
	}

	return Data(index)
}
