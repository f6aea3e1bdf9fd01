package grid

import (
	"fmt"

	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/quant"
)

// Mapper lays symbols out on a grid and reads them back under one
// quantization scheme.
type Mapper struct {
	scheme quant.Scheme
}

// NewMapper creates a Mapper for the given scheme.
func NewMapper(scheme quant.Scheme) Mapper {
	return Mapper{scheme: scheme}
}

// Layout writes symbols onto a new 3-channel width x height grid, three
// symbols per pixel in row-major order. Data symbols become their
// interval anchor; filler symbols leave the channel at zero, as does
// every channel past the last symbol. Returns ErrGridCapacity when the
// symbols need more pixels than the grid has.
func (m Mapper) Layout(symbols []quant.Symbol, width, height int) (*Grid, error) {
	g, err := New(width, height, dataChannels)
	if err != nil {
		return nil, err
	}

	pixelsNeeded := ceilDiv(len(symbols), dataChannels)
	if pixelsNeeded > width*height {
		return nil, fmt.Errorf("%w: %d symbols need %d pixels, grid has %d",
			errs.ErrGridCapacity, len(symbols), pixelsNeeded, width*height)
	}

	// With 3 channels, symbol i lands exactly at buffer offset i.
	for i, sym := range symbols {
		idx, ok := sym.Index()
		if !ok {
			continue
		}
		g.data[i] = m.scheme.Anchor(idx)
	}

	return g, nil
}

// Extract reads back exactly width*height*3 symbols. A pixel whose
// first three channels are all filler-valued yields three filler
// symbols; any other pixel yields one symbol per data channel. Pixels
// missing from a short underlying buffer read as filler.
func (m Mapper) Extract(g *Grid) []quant.Symbol {
	out := make([]quant.Symbol, g.width*g.height*dataChannels)
	m.ExtractTo(out, g)

	return out
}

// ExtractTo is Extract into a caller-owned slice, which must hold
// exactly width*height*3 symbols. It panics on a length mismatch.
func (m Mapper) ExtractTo(dst []quant.Symbol, g *Grid) {
	want := g.width * g.height * dataChannels
	if len(dst) != want {
		panic(fmt.Sprintf("grid: symbol destination length %d, want %d", len(dst), want))
	}

	for p := 0; p < g.width*g.height; p++ {
		base := p * g.channels
		o := p * dataChannels

		if base+dataChannels > len(g.data) {
			dst[o] = quant.Filler()
			dst[o+1] = quant.Filler()
			dst[o+2] = quant.Filler()
			continue
		}

		c0, c1, c2 := g.data[base], g.data[base+1], g.data[base+2]
		if m.scheme.IsFiller(c0) && m.scheme.IsFiller(c1) && m.scheme.IsFiller(c2) {
			dst[o] = quant.Filler()
			dst[o+1] = quant.Filler()
			dst[o+2] = quant.Filler()
			continue
		}

		dst[o] = m.scheme.ToSymbol(c0)
		dst[o+1] = m.scheme.ToSymbol(c1)
		dst[o+2] = m.scheme.ToSymbol(c2)
	}
}
