package imageio

import (
	"fmt"
	"io"

	"golang.org/x/image/bmp"

	"github.com/pixelgram/pxg/grid"
)

// BMPCodec reads and writes grids as BMP images.
//
// BMP stores raw intensities with no compression layer, which makes it
// the cheapest format to produce and a useful debugging target: the
// grid bytes are visible in the file with a hex editor. Opaque grids
// are written as 24-bit BMP, grids with an alpha channel as 32-bit.
type BMPCodec struct{}

var (
	_ PixelSource = BMPCodec{}
	_ PixelSink   = BMPCodec{}
)

// ReadGrid decodes a BMP stream into a grid.
func (BMPCodec) ReadGrid(r io.Reader) (*grid.Grid, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode bmp: %w", err)
	}

	return imageToGrid(img)
}

// WriteGrid encodes a grid as a BMP stream.
func (BMPCodec) WriteGrid(w io.Writer, g *grid.Grid) error {
	if err := bmp.Encode(w, gridToImage(g)); err != nil {
		return fmt.Errorf("encode bmp: %w", err)
	}

	return nil
}
