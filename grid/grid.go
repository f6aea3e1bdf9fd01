package grid

import (
	"fmt"

	"github.com/pixelgram/pxg/errs"
)

// dataChannels is the number of channels per pixel that carry symbols.
// Channel 3, when present, is alpha and passes through untouched.
const dataChannels = 3

// Grid is a flat buffer of pixel channel intensities, row-major with x
// fastest. It is not safe for concurrent mutation.
type Grid struct {
	width    int
	height   int
	channels int
	data     []byte
}

// New creates a zero-filled grid. Zero is the universal filler
// intensity, so a fresh grid reads back as all filler. channels must be
// 3 (RGB) or 4 (RGBA).
func New(width, height, channels int) (*Grid, error) {
	if err := validate(width, height, channels); err != nil {
		return nil, err
	}

	return &Grid{
		width:    width,
		height:   height,
		channels: channels,
		data:     make([]byte, width*height*channels),
	}, nil
}

// FromBytes wraps an existing channel buffer without copying it. The
// buffer length may disagree with width*height*channels: readers treat
// missing pixels as filler and ignore surplus bytes.
func FromBytes(width, height, channels int, data []byte) (*Grid, error) {
	if err := validate(width, height, channels); err != nil {
		return nil, err
	}

	return &Grid{width: width, height: height, channels: channels, data: data}, nil
}

func validate(width, height, channels int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", errs.ErrInvalidDimensions, width, height)
	}
	if channels != 3 && channels != 4 {
		return fmt.Errorf("%w: %d, want 3 or 4", errs.ErrInvalidChannelCount, channels)
	}

	return nil
}

// Width returns the grid width in pixels.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in pixels.
func (g *Grid) Height() int {
	return g.height
}

// Channels returns the number of channels per pixel, 3 or 4.
func (g *Grid) Channels() int {
	return g.channels
}

// Pixels returns the number of pixels, width*height.
func (g *Grid) Pixels() int {
	return g.width * g.height
}

// Bytes returns the underlying channel buffer. The slice aliases the
// grid's storage; mutating it mutates the grid.
func (g *Grid) Bytes() []byte {
	return g.data
}

// At returns the intensity of channel c of pixel (x, y), or 0 when the
// coordinates are out of range or the underlying buffer is short.
func (g *Grid) At(x, y, c int) uint8 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height || c < 0 || c >= g.channels {
		return 0
	}

	i := (y*g.width+x)*g.channels + c
	if i >= len(g.data) {
		return 0
	}

	return g.data[i]
}

// Set writes the intensity of channel c of pixel (x, y). Out-of-range
// coordinates are ignored.
func (g *Grid) Set(x, y, c int, v uint8) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height || c < 0 || c >= g.channels {
		return
	}

	i := (y*g.width+x)*g.channels + c
	if i >= len(g.data) {
		return
	}

	g.data[i] = v
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:    g.width,
		height:   g.height,
		channels: g.channels,
		data:     append([]byte(nil), g.data...),
	}
}
