package codec

import (
	"github.com/pixelgram/pxg/bitstream"
	"github.com/pixelgram/pxg/format"
	"github.com/pixelgram/pxg/grid"
)

// Encoder turns payload bytes into anchor-valued pixel grids.
type Encoder struct {
	cfg *Config
}

// NewEncoder creates an Encoder over a Config built with NewConfig.
func NewEncoder(cfg *Config) *Encoder {
	return &Encoder{cfg: cfg}
}

// Config returns the shared pipeline configuration.
func (e *Encoder) Config() *Config {
	return e.cfg
}

// Encode appends redundancy to payload, packs it into symbols and lays
// them out on a grid sized by the configured planning mode. An empty
// payload yields an all-filler grid of the minimum dimensions.
func (e *Encoder) Encode(payload []byte) (*grid.Grid, error) {
	encoded := e.cfg.fec.Encode(payload)
	width, height := e.plan(len(payload), len(encoded))

	return e.layout(encoded, width, height)
}

// EncodeInto is Encode with caller-chosen dimensions. It fails with
// errs.ErrGridCapacity when the redundancy-carrying payload does not
// fit width*height pixels.
func (e *Encoder) EncodeInto(payload []byte, width, height int) (*grid.Grid, error) {
	encoded := e.cfg.fec.Encode(payload)

	return e.layout(encoded, width, height)
}

func (e *Encoder) layout(encoded []byte, width, height int) (*grid.Grid, error) {
	stream := bitstream.FromBytes(encoded)
	symbols := stream.ToSymbols(e.cfg.scheme)

	return e.cfg.mapper.Layout(symbols, width, height)
}

func (e *Encoder) plan(payloadBytes, encodedBytes int) (int, int) {
	if e.cfg.sizeMode == format.SizeAuto {
		return e.cfg.planner.PlanPreset(payloadBytes, encodedBytes)
	}

	return e.cfg.planner.PlanAdaptive(encodedBytes)
}
