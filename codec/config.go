package codec

import (
	"fmt"

	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/fec"
	"github.com/pixelgram/pxg/format"
	"github.com/pixelgram/pxg/grid"
	"github.com/pixelgram/pxg/internal/options"
	"github.com/pixelgram/pxg/quant"
)

// Config holds the validated pipeline configuration together with the
// core components derived from it. Build one with NewConfig and share
// it between pipelines; it is immutable after construction. The zero
// value is not usable.
type Config struct {
	intervalWidth int
	fillerMax     int
	ratio         float64
	minDimension  int
	maxWarnings   int
	sizeMode      format.SizeMode
	presets       []grid.Preset

	scheme  quant.Scheme
	fec     fec.Codec
	mapper  grid.Mapper
	planner grid.Planner
}

// Option configures a Config under construction.
// This is a type alias for the generic Option interface specialized for Config.
type Option = options.Option[*Config]

// WithIntervalWidth sets the quantization interval width L. Required;
// there is no usable default.
func WithIntervalWidth(width int) Option {
	return options.NoError(func(c *Config) {
		c.intervalWidth = width
	})
}

// WithFillerMax sets the highest intensity treated as filler.
func WithFillerMax(fillerMax int) Option {
	return options.NoError(func(c *Config) {
		c.fillerMax = fillerMax
	})
}

// WithRedundancyRatio sets the redundancy-to-payload size ratio. Zero
// disables the redundancy layer entirely.
func WithRedundancyRatio(ratio float64) Option {
	return options.NoError(func(c *Config) {
		c.ratio = ratio
	})
}

// WithMinDimension sets the lower bound for planned grid dimensions.
// Required; there is no usable default.
func WithMinDimension(minDimension int) Option {
	return options.NoError(func(c *Config) {
		c.minDimension = minDimension
	})
}

// WithMaxCorrectionWarnings caps how many unrecovered redundancy blocks
// a decode report enumerates.
func WithMaxCorrectionWarnings(limit int) Option {
	return options.NoError(func(c *Config) {
		c.maxWarnings = limit
	})
}

// WithSizeMode selects how the encoder plans grid dimensions. The zero
// mode plans adaptively.
func WithSizeMode(mode format.SizeMode) Option {
	return options.NoError(func(c *Config) {
		c.sizeMode = mode
	})
}

// WithPresets overrides the preset ladder used by format.SizeAuto.
// Sides must be positive and strictly ascending.
func WithPresets(presets ...grid.Preset) Option {
	return options.NoError(func(c *Config) {
		c.presets = presets
	})
}

// NewConfig applies the options and derives the scheme, redundancy
// codec, mapper and planner, validating everything once. Interval width
// and min dimension have no defaults and must be set; every derived
// validation failure wraps errs.ErrInvalidConfig.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.sizeMode == 0 {
		cfg.sizeMode = format.SizeAdaptive
	}
	switch cfg.sizeMode {
	case format.SizeAdaptive, format.SizeAuto:
	default:
		return nil, fmt.Errorf("%w: size mode %d", errs.ErrInvalidConfig, cfg.sizeMode)
	}

	var err error
	cfg.scheme, err = quant.New(cfg.intervalWidth, cfg.fillerMax)
	if err != nil {
		return nil, err
	}
	cfg.fec, err = fec.New(cfg.ratio, cfg.maxWarnings)
	if err != nil {
		return nil, err
	}
	cfg.planner, err = grid.NewPlanner(cfg.scheme, cfg.minDimension, cfg.presets...)
	if err != nil {
		return nil, err
	}
	cfg.mapper = grid.NewMapper(cfg.scheme)

	return cfg, nil
}

// IntervalWidth returns the configured interval width L.
func (c *Config) IntervalWidth() int {
	return c.intervalWidth
}

// FillerMax returns the highest intensity treated as filler.
func (c *Config) FillerMax() int {
	return c.fillerMax
}

// RedundancyRatio returns the configured redundancy ratio.
func (c *Config) RedundancyRatio() float64 {
	return c.ratio
}

// MinDimension returns the lower bound for planned grid dimensions.
func (c *Config) MinDimension() int {
	return c.minDimension
}

// MaxCorrectionWarnings returns the decode report enumeration cap.
func (c *Config) MaxCorrectionWarnings() int {
	return c.maxWarnings
}

// SizeMode returns the configured planning mode.
func (c *Config) SizeMode() format.SizeMode {
	return c.sizeMode
}

// Scheme returns the derived quantization scheme.
func (c *Config) Scheme() quant.Scheme {
	return c.scheme
}

// Planner returns the derived dimension planner.
func (c *Config) Planner() grid.Planner {
	return c.planner
}

// Plan returns the grid dimensions the configured size mode picks for a
// payload of the given pre-redundancy byte size.
func (c *Config) Plan(payloadBytes int) (width, height int) {
	encodedBytes := payloadBytes + int(float64(payloadBytes)*c.ratio)
	if c.sizeMode == format.SizeAuto {
		return c.planner.PlanPreset(payloadBytes, encodedBytes)
	}

	return c.planner.PlanAdaptive(encodedBytes)
}

// EncodedCapacity returns how many whole bytes of redundancy-carrying
// payload a width by height grid can store.
func (c *Config) EncodedCapacity(width, height int) int {
	return width * height * 3 * c.scheme.BitsPerSymbol() / 8
}
