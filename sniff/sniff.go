// Package sniff guesses the content type of decoded payload bytes.
//
// Decoded grids hand back raw bytes with no name attached. Detect
// restores an advisory type tag so callers can pick a sensible file
// extension: first by matching well-known magic signatures, then by a
// text heuristic over the leading bytes. The result is a hint, never a
// guarantee.
package sniff

import (
	"bytes"

	"github.com/pixelgram/pxg/format"
)

const (
	// sampleSize caps how many leading bytes the text heuristic reads.
	sampleSize = 1000

	printableThreshold = 0.85
	controlThreshold   = 0.05
)

// signatures maps leading magic bytes to payload kinds. The prefixes
// are mutually exclusive, so match order does not matter.
var signatures = []struct {
	kind  format.PayloadKind
	magic []byte
}{
	{format.PayloadZip, []byte{0x50, 0x4B, 0x03, 0x04}},
	{format.PayloadDoc, []byte{0xD0, 0xCF, 0x11, 0xE0}},
	{format.PayloadPDF, []byte{0x25, 0x50, 0x44, 0x46}},
	{format.PayloadPNG, []byte{0x89, 0x50, 0x4E, 0x47}},
	{format.PayloadJPEG, []byte{0xFF, 0xD8, 0xFF, 0xE0}},
	{format.PayloadJPEG, []byte{0xFF, 0xD8, 0xFF, 0xE1}},
	{format.PayloadBMP, []byte{0x42, 0x4D}},
	{format.PayloadGIF, []byte{0x47, 0x49, 0x46, 0x38}},
}

// Detect guesses the payload kind from its leading bytes.
//
// Buffers under 4 bytes are always PayloadBinary, even when they start
// with a shorter signature. Unrecognized data falls through to the text
// heuristic and comes back as PayloadText or PayloadBinary.
func Detect(data []byte) format.PayloadKind {
	if len(data) < 4 {
		return format.PayloadBinary
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.magic) {
			return sig.kind
		}
	}

	if isText(data) {
		return format.PayloadText
	}

	return format.PayloadBinary
}

// isText reports whether the leading sample reads as text. Printable
// ASCII, tab, LF, CR, DEL and all high bytes count as text characters;
// high bytes get the benefit of the doubt because they may be UTF-8
// continuations. The scan bails out as soon as NUL bytes exceed 5% or
// other control bytes exceed 2% of the sample.
func isText(data []byte) bool {
	sample := data
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	if len(sample) == 0 {
		return false
	}

	var printable, control, nulls int
	for _, c := range sample {
		switch {
		case c >= 32 && c <= 126, c == '\t', c == '\n', c == '\r':
			printable++
		case c == 0:
			nulls++
			if nulls > len(sample)/20 {
				return false
			}
		case c < 32:
			control++
			if control > len(sample)/50 {
				return false
			}
		default:
			printable++
		}
	}

	printableRatio := float64(printable) / float64(len(sample))
	controlRatio := float64(control) / float64(len(sample))

	return printableRatio > printableThreshold && controlRatio < controlThreshold
}
