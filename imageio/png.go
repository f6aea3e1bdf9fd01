package imageio

import (
	"fmt"
	"image/png"
	"io"

	"github.com/pixelgram/pxg/grid"
)

// PNGCodec reads and writes grids as PNG images.
//
// PNG is the default carrier format: lossless, universally supported,
// and its DEFLATE layer shrinks filler-heavy grids for free. Grids are
// written as 8-bit truecolor; the encoder drops the alpha plane on its
// own when every pixel is opaque.
type PNGCodec struct{}

var (
	_ PixelSource = PNGCodec{}
	_ PixelSink   = PNGCodec{}
)

// ReadGrid decodes a PNG stream into a grid.
func (PNGCodec) ReadGrid(r io.Reader) (*grid.Grid, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	return imageToGrid(img)
}

// WriteGrid encodes a grid as a PNG stream.
func (PNGCodec) WriteGrid(w io.Writer, g *grid.Grid) error {
	if err := png.Encode(w, gridToImage(g)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	return nil
}
