// Package pxg encodes arbitrary byte payloads into grids of quantized
// pixel intensities and decodes them back, tolerating the small
// intensity drift introduced by image processing pipelines.
//
// A payload is packed into fixed-width bit symbols, each symbol is
// stored as the anchor intensity of its quantization interval, and a
// best-effort XOR redundancy suffix is appended so that single-bit
// damage can often be repaired on decode. Grids round-trip through
// lossless image files (PNG, BMP) or through the compact PXG container
// format.
//
// # Core Features
//
//   - Interval quantization with drift tolerance: intensities may move
//     anywhere within their interval without losing data
//   - XOR-parity redundancy with single-bit-flip repair on decode
//   - Adaptive near-square or preset (128/512/1024) grid sizing
//   - Payload type sniffing (text, zip, pdf, png, ...) on decode
//   - Lossless image round-trips via PNG and BMP
//   - Self-describing container blobs with Zstd/S2/LZ4 compression and
//     xxHash64 checksums
//   - Grid purification for drifted images without re-encoding
//
// # Basic Usage
//
// Encoding and decoding in memory:
//
//	import "github.com/pixelgram/pxg"
//
//	g, _ := pxg.Encode([]byte("hello grids"))
//	res, _ := pxg.Decode(g)
//	fmt.Printf("%s (%s)\n", res.Payload, res.Kind)
//
// Writing a payload to a PNG file and reading it back:
//
//	_ = pxg.EncodeToFile("payload.png", data)
//	res, _ := pxg.DecodeImageFile("payload.png")
//
// Tuning the pipeline with options:
//
//	g, err := pxg.Encode(data,
//	    codec.WithRedundancyRatio(0.5),
//	    codec.WithSizeMode(format.SizeAuto),
//	)
//
// # Package Structure
//
// This package provides convenient top-level wrappers with
// application-level defaults. For fine-grained control, use the codec
// package directly; the quant, bitstream, fec, grid, imageio and
// container packages expose the individual pipeline stages.
package pxg

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pixelgram/pxg/codec"
	"github.com/pixelgram/pxg/container"
	"github.com/pixelgram/pxg/format"
	"github.com/pixelgram/pxg/grid"
	"github.com/pixelgram/pxg/imageio"
)

// Application-level defaults. The codec package takes explicit values;
// these are the settings every top-level call starts from.
const (
	// DefaultIntervalWidth is the quantization interval width L.
	DefaultIntervalWidth = 5

	// DefaultFillerMax is the highest intensity treated as filler.
	DefaultFillerMax = 10

	// DefaultRedundancyRatio is the redundancy-to-payload size ratio.
	DefaultRedundancyRatio = 0.25

	// DefaultMinDimension is the lower bound for adaptive grid sides.
	DefaultMinDimension = 16

	// DefaultMaxWarnings caps enumerated unrecovered redundancy blocks.
	DefaultMaxWarnings = 15

	// DefaultCompression is the container payload compression.
	DefaultCompression = format.CompressionZstd
)

var defaultOptions = []codec.Option{
	codec.WithIntervalWidth(DefaultIntervalWidth),
	codec.WithFillerMax(DefaultFillerMax),
	codec.WithRedundancyRatio(DefaultRedundancyRatio),
	codec.WithMinDimension(DefaultMinDimension),
	codec.WithMaxCorrectionWarnings(DefaultMaxWarnings),
	codec.WithSizeMode(format.SizeAdaptive),
}

// NewConfig builds a codec.Config from the package defaults with opts
// applied on top. Later options win, so callers override exactly the
// settings they name.
func NewConfig(opts ...codec.Option) (*codec.Config, error) {
	all := make([]codec.Option, 0, len(defaultOptions)+len(opts))
	all = append(all, defaultOptions...)
	all = append(all, opts...)

	return codec.NewConfig(all...)
}

// NewEncoder creates a payload-to-grid encoder with the package
// defaults applied first.
//
// Available options:
//   - codec.WithIntervalWidth(n)
//   - codec.WithFillerMax(n)
//   - codec.WithRedundancyRatio(f)
//   - codec.WithMinDimension(n)
//   - codec.WithMaxCorrectionWarnings(n)
//   - codec.WithSizeMode(format.SizeAdaptive|format.SizeAuto)
//   - codec.WithPresets(presets...)
//
// Example:
//
//	enc, err := pxg.NewEncoder(codec.WithSizeMode(format.SizeAuto))
func NewEncoder(opts ...codec.Option) (*codec.Encoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return codec.NewEncoder(cfg), nil
}

// NewDecoder creates a grid-to-payload decoder with the package
// defaults applied first. The redundancy ratio must match the one the
// grid was encoded with, or size recovery miscounts.
func NewDecoder(opts ...codec.Option) (*codec.Decoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return codec.NewDecoder(cfg), nil
}

// NewCorrector creates a grid purifier with the package defaults
// applied first. Correcting rewrites drifted intensities back to their
// interval anchors without decoding the payload.
func NewCorrector(opts ...codec.Option) (*codec.Corrector, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return codec.NewCorrector(cfg), nil
}

// Encode packs payload into a fresh grid using the package defaults
// with opts applied on top.
//
// This is the one-call form; construct an Encoder once instead when
// encoding many payloads with the same settings.
func Encode(payload []byte, opts ...codec.Option) (*grid.Grid, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(payload)
}

// Decode extracts the payload carried by g using the package defaults
// with opts applied on top. The result bundles the recovered payload,
// the redundancy verification report and the sniffed payload kind.
func Decode(g *grid.Grid, opts ...codec.Option) (*codec.DecodeResult, error) {
	dec, err := NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(g)
}

// Correct rewrites every intensity in g to its canonical value and
// reports how far the grid had drifted. The input grid is not
// modified; when it is already pure it is returned as-is.
func Correct(g *grid.Grid, opts ...codec.Option) (*grid.Grid, codec.CorrectionReport, error) {
	cor, err := NewCorrector(opts...)
	if err != nil {
		return nil, codec.CorrectionReport{}, err
	}

	return cor.Correct(g)
}

// EncodeToImage encodes payload and writes the grid to w in the given
// image format. format.ImageContainer writes a PXG container blob with
// the default Zstd compression; PNG and BMP write lossless image
// files.
func EncodeToImage(w io.Writer, payload []byte, img format.ImageFormat, opts ...codec.Option) error {
	g, err := Encode(payload, opts...)
	if err != nil {
		return err
	}

	return WriteGrid(w, g, img)
}

// EncodeToFile is EncodeToImage with the format chosen by the file
// extension: .png, .bmp or .pxg.
func EncodeToFile(path string, payload []byte, opts ...codec.Option) error {
	img, err := imageio.FormatForPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := EncodeToImage(&buf, payload, img, opts...); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// DecodeImage reads a grid from r, detecting PNG, BMP or container
// framing by magic bytes, and decodes its payload.
func DecodeImage(r io.Reader, opts ...codec.Option) (*codec.DecodeResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image stream: %w", err)
	}

	g, err := ReadGridBytes(data)
	if err != nil {
		return nil, err
	}

	return Decode(g, opts...)
}

// DecodeImageFile is DecodeImage over the contents of path.
func DecodeImageFile(path string, opts ...codec.Option) (*codec.DecodeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	g, err := ReadGridBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return Decode(g, opts...)
}

// CorrectImageFile reads the grid stored at inPath, rewrites drifted
// intensities to their anchors, and writes the result to outPath in
// the format chosen by its extension. The returned report describes
// the drift found; a grid that was already pure is written back
// unchanged. Container outputs carry the corrected-advisory header
// flag once any pass has rewritten the grid.
func CorrectImageFile(inPath, outPath string, opts ...codec.Option) (codec.CorrectionReport, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return codec.CorrectionReport{}, err
	}

	g, err := ReadGridBytes(data)
	if err != nil {
		return codec.CorrectionReport{}, fmt.Errorf("%s: %w", inPath, err)
	}

	out, rep, err := Correct(g, opts...)
	if err != nil {
		return codec.CorrectionReport{}, err
	}

	img, err := imageio.FormatForPath(outPath)
	if err != nil {
		return codec.CorrectionReport{}, err
	}

	var buf bytes.Buffer
	if err := WriteGrid(&buf, out, img); err != nil {
		return codec.CorrectionReport{}, err
	}
	if img == format.ImageContainer && wasCorrected(data, rep) {
		if err := container.MarkCorrected(buf.Bytes()); err != nil {
			return codec.CorrectionReport{}, err
		}
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return codec.CorrectionReport{}, err
	}

	return rep, nil
}

// wasCorrected reports whether a rewritten container should carry the
// corrected-advisory flag: either this pass changed the grid, or the
// input blob already carried the flag.
func wasCorrected(input []byte, rep codec.CorrectionReport) bool {
	if !rep.AlreadyPure {
		return true
	}

	h, err := container.ParseHeader(input)

	return err == nil && h.Corrected()
}

// ReadGridBytes restores a grid from encoded image or container bytes,
// detecting the framing by magic bytes.
func ReadGridBytes(data []byte) (*grid.Grid, error) {
	img, err := imageio.DetectFormat(data)
	if err != nil {
		return nil, err
	}

	if img == format.ImageContainer {
		return container.Unpack(data)
	}

	src, err := imageio.SourceFor(img)
	if err != nil {
		return nil, err
	}

	return src.ReadGrid(bytes.NewReader(data))
}

// WriteGrid writes g to w in the given image format, with container
// blobs compressed using the default algorithm.
func WriteGrid(w io.Writer, g *grid.Grid, img format.ImageFormat) error {
	if img == format.ImageContainer {
		_, err := container.PackTo(w, g, DefaultCompression)
		return err
	}

	sink, err := imageio.SinkFor(img)
	if err != nil {
		return err
	}

	return sink.WriteGrid(w, g)
}
