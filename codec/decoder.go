package codec

import (
	"fmt"

	"github.com/pixelgram/pxg/bitstream"
	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/fec"
	"github.com/pixelgram/pxg/format"
	"github.com/pixelgram/pxg/grid"
	"github.com/pixelgram/pxg/internal/pool"
	"github.com/pixelgram/pxg/sniff"
)

// DecodeResult carries a decoded payload and its diagnostics.
type DecodeResult struct {
	// Payload is the recovered byte buffer. It is always populated, even
	// when redundancy verification failed; a best-effort payload beats
	// none.
	Payload []byte

	// Report is the redundancy verification and correction outcome.
	Report fec.Report

	// Kind is the advisory content type sniffed from the payload, for
	// callers that need to name an output file.
	Kind format.PayloadKind
}

// Decoder recovers payload bytes from anchor-valued pixel grids.
type Decoder struct {
	cfg *Config
}

// NewDecoder creates a Decoder over a Config built with NewConfig.
func NewDecoder(cfg *Config) *Decoder {
	return &Decoder{cfg: cfg}
}

// Config returns the shared pipeline configuration.
func (d *Decoder) Config() *Config {
	return d.cfg
}

// Decode extracts the symbols of g, regroups their bits into bytes and
// runs redundancy verification. Grid dimension surpluses, deficits and
// filler regions are tolerated by construction, so decoding itself
// cannot fail; damage beyond the redundancy layer's reach surfaces in
// the report, not as an error.
func (d *Decoder) Decode(g *grid.Grid) (*DecodeResult, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", errs.ErrInvalidDimensions)
	}

	symbols, cleanup := pool.GetSymbolSlice(g.Pixels() * 3)
	defer cleanup()
	d.cfg.mapper.ExtractTo(symbols, g)

	capacityBits := len(symbols) * d.cfg.scheme.BitsPerSymbol()
	stream := bitstream.FromSymbols(symbols, d.cfg.scheme, capacityBits)

	// The final data symbol can carry up to BitsPerSymbol-1 bits of
	// encode-side zero padding, always less than a byte. Cutting the
	// stream to whole bytes strips exactly that padding and restores the
	// encoded buffer length.
	stream.Truncate(stream.Len() - stream.Len()%8)

	payload, report := d.cfg.fec.Decode(stream.Bytes())

	return &DecodeResult{
		Payload: payload,
		Report:  report,
		Kind:    sniff.Detect(payload),
	}, nil
}
