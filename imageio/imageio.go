// Package imageio reads and writes pixel grids as image files.
//
// Two lossless formats are supported: PNG through the standard library
// and BMP through golang.org/x/image. Reading converts any source image
// into a 3- or 4-channel grid: grayscale inputs are expanded by
// replicating the single channel, and an alpha channel is kept only
// when the image actually uses it. Lossy formats would destroy the
// quantized intensities, so JPEG input is rejected outright.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"path/filepath"
	"strings"

	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/format"
	"github.com/pixelgram/pxg/grid"
)

// PixelSource decodes an image stream into a grid.
type PixelSource interface {
	ReadGrid(r io.Reader) (*grid.Grid, error)
}

// PixelSink encodes a grid into an image stream.
type PixelSink interface {
	WriteGrid(w io.Writer, g *grid.Grid) error
}

// magic signatures for content sniffing.
var (
	pngMagic       = []byte("\x89PNG\r\n\x1a\n")
	bmpMagic       = []byte("BM")
	containerMagic = []byte("PXG1")
	jpegMagics     = [][]byte{
		{0xFF, 0xD8, 0xFF, 0xE0},
		{0xFF, 0xD8, 0xFF, 0xE1},
	}
)

// DetectFormat sniffs the image format from the leading bytes of data.
// Container blobs are recognized and reported as format.ImageContainer;
// unpacking them is the container package's job.
//
// Returns ErrLossyFormat for JPEG data and ErrUnsupportedImageFormat
// for anything unrecognized.
func DetectFormat(data []byte) (format.ImageFormat, error) {
	switch {
	case hasPrefix(data, pngMagic):
		return format.ImagePNG, nil
	case hasPrefix(data, containerMagic):
		return format.ImageContainer, nil
	case hasPrefix(data, bmpMagic):
		return format.ImageBMP, nil
	}

	for _, m := range jpegMagics {
		if hasPrefix(data, m) {
			return 0, fmt.Errorf("%w: JPEG input would corrupt quantized intensities", errs.ErrLossyFormat)
		}
	}

	return 0, fmt.Errorf("%w: unrecognized image signature", errs.ErrUnsupportedImageFormat)
}

// FormatForPath maps a filename extension to its image format.
//
// Returns ErrLossyFormat for .jpg/.jpeg and ErrUnsupportedImageFormat
// for unknown extensions.
func FormatForPath(path string) (format.ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return format.ImagePNG, nil
	case ".bmp":
		return format.ImageBMP, nil
	case ".pxg":
		return format.ImageContainer, nil
	case ".jpg", ".jpeg":
		return 0, fmt.Errorf("%w: JPEG output would corrupt quantized intensities", errs.ErrLossyFormat)
	default:
		return 0, fmt.Errorf("%w: extension %q", errs.ErrUnsupportedImageFormat, filepath.Ext(path))
	}
}

// SourceFor returns the PixelSource for an image format.
func SourceFor(f format.ImageFormat) (PixelSource, error) {
	switch f {
	case format.ImagePNG:
		return PNGCodec{}, nil
	case format.ImageBMP:
		return BMPCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedImageFormat, f)
	}
}

// SinkFor returns the PixelSink for an image format.
func SinkFor(f format.ImageFormat) (PixelSink, error) {
	switch f {
	case format.ImagePNG:
		return PNGCodec{}, nil
	case format.ImageBMP:
		return BMPCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedImageFormat, f)
	}
}

func hasPrefix(data, prefix []byte) bool {
	if len(data) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if data[i] != b {
			return false
		}
	}

	return true
}

// imageToGrid converts a decoded image into a grid. Any source model is
// normalized through NRGBA: grayscale replicates into three channels,
// premultiplied alpha is unwound, and the alpha channel is kept only
// when some pixel is not fully opaque.
func imageToGrid(img image.Image) (*grid.Grid, error) {
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Bounds().Min != (image.Point{}) {
		b := img.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	width := nrgba.Bounds().Dx()
	height := nrgba.Bounds().Dy()
	channels := 3
	if !nrgba.Opaque() {
		channels = 4
	}

	g, err := grid.New(width, height, channels)
	if err != nil {
		return nil, err
	}

	data := g.Bytes()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := nrgba.PixOffset(x, y)
			dst := (y*width + x) * channels
			data[dst+0] = nrgba.Pix[src+0]
			data[dst+1] = nrgba.Pix[src+1]
			data[dst+2] = nrgba.Pix[src+2]
			if channels == 4 {
				data[dst+3] = nrgba.Pix[src+3]
			}
		}
	}

	return g, nil
}

// gridToImage converts a grid into an NRGBA image. 3-channel grids are
// written fully opaque; short underlying buffers read as zero.
func gridToImage(g *grid.Grid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			o := img.PixOffset(x, y)
			img.Pix[o+0] = g.At(x, y, 0)
			img.Pix[o+1] = g.At(x, y, 1)
			img.Pix[o+2] = g.At(x, y, 2)
			if g.Channels() == 4 {
				img.Pix[o+3] = g.At(x, y, 3)
			} else {
				img.Pix[o+3] = 0xFF
			}
		}
	}

	return img
}
