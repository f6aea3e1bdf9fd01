// pxg - payload to pixel-grid codec CLI
//
// Usage:
//
//	pxg encode -in FILE [options]   Encode a payload file into a grid image
//	pxg decode -in IMAGE [options]  Decode a grid image back to its payload
//	pxg correct -in IMAGE [options] Rewrite drifted intensities to anchors
//	pxg info -in FILE               Print header and capacity details
//	pxg help                        Print this help
//
// Encode writes PNG by default; -format selects bmp or the pxg
// container. Decode detects the input framing by magic bytes and, when
// -out is omitted, names the output after the input plus the sniffed
// payload type. Redundancy warnings go to stderr and do not change the
// exit code: 0 on success, 1 on error.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixelgram/pxg"
	"github.com/pixelgram/pxg/codec"
	"github.com/pixelgram/pxg/compress"
	"github.com/pixelgram/pxg/container"
	"github.com/pixelgram/pxg/format"
	"github.com/pixelgram/pxg/imageio"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = cmdEncode(os.Args[2:])
	case "decode":
		err = cmdDecode(os.Args[2:])
	case "correct":
		err = cmdCorrect(os.Args[2:])
	case "info":
		err = cmdInfo(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "pxg: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pxg: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `pxg - payload to pixel-grid codec

Usage:
  pxg encode -in FILE [-out OUT] [-format png|bmp|pxg] [-mode adaptive|auto]
             [-l N] [-filler N] [-ratio F] [-min-dim N]
             [-compress zstd|s2|lz4|none]
  pxg decode -in IMAGE [-out OUT] [-l N] [-filler N] [-ratio F]
  pxg correct -in IMAGE [-out OUT] [-l N] [-filler N]
  pxg info -in FILE

Examples:
  pxg encode -in report.zip -out report.png
  pxg encode -in big.bin -format pxg -compress s2 -mode auto
  pxg decode -in report.png
  pxg correct -in drifted.png -out clean.png
`)
}

// tuning bundles the quantization flags shared by the subcommands.
type tuning struct {
	l      int
	filler int
	ratio  float64
	minDim int
}

func (t *tuning) register(fs *flag.FlagSet, withRatio, withMinDim bool) {
	fs.IntVar(&t.l, "l", pxg.DefaultIntervalWidth, "quantization interval width")
	fs.IntVar(&t.filler, "filler", pxg.DefaultFillerMax, "highest intensity treated as filler")

	t.ratio = pxg.DefaultRedundancyRatio
	if withRatio {
		fs.Float64Var(&t.ratio, "ratio", pxg.DefaultRedundancyRatio, "redundancy to payload size ratio")
	}
	t.minDim = pxg.DefaultMinDimension
	if withMinDim {
		fs.IntVar(&t.minDim, "min-dim", pxg.DefaultMinDimension, "minimum adaptive grid side")
	}
}

func (t *tuning) options() []codec.Option {
	return []codec.Option{
		codec.WithIntervalWidth(t.l),
		codec.WithFillerMax(t.filler),
		codec.WithRedundancyRatio(t.ratio),
		codec.WithMinDimension(t.minDim),
	}
}

func cmdEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	in := fs.String("in", "", "payload file to encode (required)")
	out := fs.String("out", "", "output file (default: input plus format extension)")
	formatName := fs.String("format", "png", "output format: png, bmp or pxg")
	mode := fs.String("mode", "adaptive", "grid sizing: adaptive or auto")
	compressName := fs.String("compress", "zstd", "container compression: zstd, s2, lz4 or none")
	var tune tuning
	tune.register(fs, true, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("encode: -in is required")
	}

	img, err := parseImageFormat(*formatName)
	if err != nil {
		return err
	}
	sizeMode, err := parseSizeMode(*mode)
	if err != nil {
		return err
	}
	compression, err := parseCompression(*compressName)
	if err != nil {
		return err
	}

	payload, err := os.ReadFile(*in)
	if err != nil {
		return err
	}

	opts := append(tune.options(), codec.WithSizeMode(sizeMode))
	g, err := pxg.Encode(payload, opts...)
	if err != nil {
		return err
	}

	outPath := *out
	if outPath == "" {
		outPath = *in + "." + extensionFor(img)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if img == format.ImageContainer {
		_, err = container.PackTo(f, g, compression)
	} else {
		var sink imageio.PixelSink
		if sink, err = imageio.SinkFor(img); err == nil {
			err = sink.WriteGrid(f, g)
		}
	}
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("%s: %d bytes -> %dx%d grid -> %s\n", *in, len(payload), g.Width(), g.Height(), outPath)

	return nil
}

func cmdDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	in := fs.String("in", "", "grid image or container to decode (required)")
	out := fs.String("out", "", "payload output file (default: input name plus sniffed type)")
	var tune tuning
	tune.register(fs, true, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("decode: -in is required")
	}

	res, err := pxg.DecodeImageFile(*in, tune.options()...)
	if err != nil {
		return err
	}

	reportResiduals(res)

	outPath := *out
	if outPath == "" {
		base := strings.TrimSuffix(*in, filepath.Ext(*in))
		outPath = base + "_decoded." + res.Kind.Ext()
	}
	if err := os.WriteFile(outPath, res.Payload, 0o644); err != nil {
		return err
	}

	fmt.Printf("%s: %d bytes (%s) -> %s\n", *in, len(res.Payload), res.Kind, outPath)

	return nil
}

// reportResiduals surfaces redundancy repairs and failures on stderr.
// Residual failures are warnings, not errors: the payload is still
// written and may be largely intact.
func reportResiduals(res *codec.DecodeResult) {
	if n := len(res.Report.Corrected); n > 0 {
		fmt.Fprintf(os.Stderr, "pxg: repaired %d payload byte(s)\n", n)
	}
	if res.Report.AllVerified {
		return
	}

	fmt.Fprintf(os.Stderr, "pxg: warning: %d redundancy block(s) failed verification", len(res.Report.Failed))
	if res.Report.Omitted {
		fmt.Fprint(os.Stderr, " (list truncated)")
	}
	fmt.Fprintln(os.Stderr)
}

func cmdCorrect(args []string) error {
	fs := flag.NewFlagSet("correct", flag.ContinueOnError)
	in := fs.String("in", "", "grid image to correct (required)")
	out := fs.String("out", "", "corrected image output (default: input name plus _corrected)")
	var tune tuning
	tune.register(fs, false, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("correct: -in is required")
	}

	outPath := *out
	if outPath == "" {
		ext := filepath.Ext(*in)
		outPath = strings.TrimSuffix(*in, ext) + "_corrected" + ext
	}

	rep, err := pxg.CorrectImageFile(*in, outPath, tune.options()...)
	if err != nil {
		return err
	}

	if rep.AlreadyPure {
		fmt.Printf("%s: already pure, written unchanged to %s\n", *in, outPath)
		return nil
	}

	fmt.Printf("%s: %d deviation(s), %d filler pixel(s), deviation ratio %.4f -> %s\n",
		*in, rep.Deviations, rep.FillerPixels, rep.DeviationRatio, outPath)

	return nil
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	in := fs.String("in", "", "grid image or container to inspect (required)")
	var tune tuning
	tune.register(fs, true, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("info: -in is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}

	img, err := imageio.DetectFormat(data)
	if err != nil {
		return err
	}

	cfg, err := pxg.NewConfig(tune.options()...)
	if err != nil {
		return err
	}

	if img == format.ImageContainer {
		return containerInfo(data, cfg)
	}

	src, err := imageio.SourceFor(img)
	if err != nil {
		return err
	}
	g, err := src.ReadGrid(bytes.NewReader(data))
	if err != nil {
		return err
	}

	fmt.Printf("format:      %s\n", img)
	fmt.Printf("dimensions:  %dx%d, %d channels\n", g.Width(), g.Height(), g.Channels())
	printCapacity(cfg, g.Width(), g.Height())

	return nil
}

func containerInfo(data []byte, cfg *codec.Config) error {
	header, err := container.ParseHeader(data)
	if err != nil {
		return err
	}

	stats := compress.CompressionStats{
		Algorithm:      header.Compression,
		OriginalSize:   int64(header.UncompressedLen),
		CompressedSize: int64(header.CompressedLen),
	}

	fmt.Printf("format:      Container (PXG1 v%d)\n", header.FormatVersion)
	fmt.Printf("dimensions:  %dx%d, %d channels\n", header.Width, header.Height, header.Channels)
	fmt.Printf("compression: %s, %d -> %d bytes (%.1f%% saved)\n",
		header.Compression, header.UncompressedLen, header.CompressedLen, stats.SpaceSavings())
	fmt.Printf("checksum:    %016x\n", header.Checksum)
	if header.Corrected() {
		fmt.Printf("corrected:   yes\n")
	}
	printCapacity(cfg, int(header.Width), int(header.Height))

	return nil
}

func printCapacity(cfg *codec.Config, width, height int) {
	capacity := cfg.EncodedCapacity(width, height)
	payloadCap := int(float64(capacity) / (1 + cfg.RedundancyRatio()))

	fmt.Printf("capacity:    %d encoded bytes, ~%d payload bytes at ratio %.2f\n",
		capacity, payloadCap, cfg.RedundancyRatio())
}

func parseImageFormat(name string) (format.ImageFormat, error) {
	switch strings.ToLower(name) {
	case "png":
		return format.ImagePNG, nil
	case "bmp":
		return format.ImageBMP, nil
	case "pxg", "container":
		return format.ImageContainer, nil
	default:
		return 0, fmt.Errorf("unknown image format %q, want png, bmp or pxg", name)
	}
}

func extensionFor(img format.ImageFormat) string {
	switch img {
	case format.ImageBMP:
		return "bmp"
	case format.ImageContainer:
		return "pxg"
	default:
		return "png"
	}
}

func parseSizeMode(name string) (format.SizeMode, error) {
	switch strings.ToLower(name) {
	case "adaptive":
		return format.SizeAdaptive, nil
	case "auto", "preset":
		return format.SizeAuto, nil
	default:
		return 0, fmt.Errorf("unknown sizing mode %q, want adaptive or auto", name)
	}
}

func parseCompression(name string) (format.CompressionType, error) {
	switch strings.ToLower(name) {
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	case "none":
		return format.CompressionNone, nil
	default:
		return 0, fmt.Errorf("unknown compression %q, want zstd, s2, lz4 or none", name)
	}
}
