package grid

import (
	"fmt"
	"math"

	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/quant"
)

// Preset is one fixed square grid size. MaxPayload is the largest
// pre-redundancy payload in bytes the preset is selected for; zero
// means no upper bound.
type Preset struct {
	Side       int
	MaxPayload int
}

// DefaultPresets returns the stock preset ladder: 128 for payloads up
// to 96 KiB, 512 up to 1 MiB, 1024 above.
func DefaultPresets() []Preset {
	return []Preset{
		{Side: 128, MaxPayload: 96 << 10},
		{Side: 512, MaxPayload: 1 << 20},
		{Side: 1024},
	}
}

// Planner chooses grid dimensions for encoded payloads.
type Planner struct {
	scheme       quant.Scheme
	minDimension int
	presets      []Preset
}

// NewPlanner creates a Planner. minDimension is the lower bound for
// adaptive dimensions and must be at least 1. presets override
// DefaultPresets when given; sides must be positive and strictly
// ascending.
func NewPlanner(scheme quant.Scheme, minDimension int, presets ...Preset) (Planner, error) {
	if minDimension < 1 {
		return Planner{}, fmt.Errorf("%w: min dimension %d below 1", errs.ErrInvalidConfig, minDimension)
	}
	if len(presets) == 0 {
		presets = DefaultPresets()
	}
	for i, p := range presets {
		if p.Side < 1 {
			return Planner{}, fmt.Errorf("%w: preset side %d below 1", errs.ErrInvalidConfig, p.Side)
		}
		if i > 0 && p.Side <= presets[i-1].Side {
			return Planner{}, fmt.Errorf("%w: preset sides must ascend, got %d after %d",
				errs.ErrInvalidConfig, p.Side, presets[i-1].Side)
		}
	}

	return Planner{scheme: scheme, minDimension: minDimension, presets: presets}, nil
}

// PlanAdaptive returns the smallest near-square dimensions able to hold
// byteCount bytes as symbols, with both dimensions at least the
// configured minimum. The result always satisfies
// width*height*3*BitsPerSymbol >= byteCount*8.
func (p Planner) PlanAdaptive(byteCount int) (width, height int) {
	pixels := p.pixelsNeeded(byteCount)
	side := int(math.Ceil(math.Sqrt(float64(pixels))))

	width = max(side, p.minDimension)
	height = max(ceilDiv(pixels, width), p.minDimension)

	return width, height
}

// PlanPreset returns square dimensions from the preset ladder.
// payloadBytes, the pre-redundancy size, selects the preset;
// encodedBytes, the size with redundancy, must actually fit it, and the
// plan escalates through larger presets until it does. When even the
// largest preset cannot hold the payload the plan falls back to
// PlanAdaptive.
func (p Planner) PlanPreset(payloadBytes, encodedBytes int) (width, height int) {
	pixels := p.pixelsNeeded(encodedBytes)

	start := len(p.presets) - 1
	for i, preset := range p.presets {
		if preset.MaxPayload == 0 || payloadBytes <= preset.MaxPayload {
			start = i
			break
		}
	}

	for _, preset := range p.presets[start:] {
		if preset.Side*preset.Side >= pixels {
			return preset.Side, preset.Side
		}
	}

	return p.PlanAdaptive(encodedBytes)
}

func (p Planner) pixelsNeeded(byteCount int) int {
	totalSymbols := ceilDiv(byteCount*8, p.scheme.BitsPerSymbol())

	return ceilDiv(totalSymbols, dataChannels)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
