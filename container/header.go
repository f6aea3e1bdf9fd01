// Package container frames compressed pixel grids into self-describing
// binary blobs.
//
// A blob is a fixed 32-byte header followed by the compressed flat grid
// bytes. The header records the grid geometry, the compression
// algorithm, and an xxHash64 checksum of the uncompressed grid, so a
// blob can be unpacked with no out-of-band context. All multi-byte
// fields are little-endian.
package container

import (
	"encoding/binary"
	"fmt"

	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/format"
)

const (
	// HeaderSize is the fixed size of the container header in bytes.
	HeaderSize = 32

	// Version is the current container format version.
	Version = 1

	// FlagCorrected marks a grid whose intensities were rewritten to
	// their anchors at least once. Advisory; unpacking ignores it.
	FlagCorrected uint8 = 1 << 0

	// magic identifies a container blob, byte offset 0-3.
	magic = "PXG1"
)

// Header is the fixed-size header at the start of a container blob.
type Header struct {
	// FormatVersion is the container format version. byte offset 4
	FormatVersion uint8
	// Compression identifies the payload compression algorithm. byte offset 5
	Compression format.CompressionType
	// Channels is the number of channels per pixel, 3 or 4. byte offset 6
	Channels uint8
	// Flags carries advisory bits; bit 0 is FlagCorrected, the rest
	// are reserved. byte offset 7
	Flags uint8
	// Width is the grid width in pixels. byte offset 8-11
	Width uint32
	// Height is the grid height in pixels. byte offset 12-15
	Height uint32
	// UncompressedLen is the flat grid size before compression. byte offset 16-19
	UncompressedLen uint32
	// CompressedLen is the payload size as stored in the blob. byte offset 20-23
	CompressedLen uint32
	// Checksum is the xxHash64 of the uncompressed grid bytes. byte offset 24-31
	Checksum uint64
}

// NewHeader creates a header for a grid payload. The length and
// checksum fields are filled in by Pack once the payload is compressed.
func NewHeader(compression format.CompressionType, width, height, channels int) Header {
	return Header{
		FormatVersion: Version,
		Compression:   compression,
		Channels:      uint8(channels),
		Width:         uint32(width),
		Height:        uint32(height),
	}
}

// Corrected reports whether the corrected-advisory flag is set.
func (h *Header) Corrected() bool {
	return h.Flags&FlagCorrected != 0
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber,
//     ErrUnsupportedVersion, ErrInvalidCompressionType,
//     ErrInvalidDimensions or ErrInvalidChannelCount
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}
	if string(data[0:4]) != magic {
		return fmt.Errorf("%w: % x", errs.ErrInvalidMagicNumber, data[0:4])
	}

	h.FormatVersion = data[4]
	if h.FormatVersion != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.FormatVersion)
	}

	h.Compression = format.CompressionType(data[5])
	h.Channels = data[6]
	h.Flags = data[7]
	h.Width = binary.LittleEndian.Uint32(data[8:12])
	h.Height = binary.LittleEndian.Uint32(data[12:16])
	h.UncompressedLen = binary.LittleEndian.Uint32(data[16:20])
	h.CompressedLen = binary.LittleEndian.Uint32(data[20:24])
	h.Checksum = binary.LittleEndian.Uint64(data[24:32])

	return h.validate()
}

// validate checks the parsed field ranges: a known compression
// algorithm, nonzero dimensions and 3 or 4 channels. Rejecting bad
// headers here keeps garbage from reaching the decompressor.
func (h *Header) validate() error {
	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: %#x", errs.ErrInvalidCompressionType, uint8(h.Compression))
	}
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: %dx%d", errs.ErrInvalidDimensions, h.Width, h.Height)
	}
	if h.Channels != 3 && h.Channels != 4 {
		return fmt.Errorf("%w: %d, want 3 or 4", errs.ErrInvalidChannelCount, h.Channels)
	}

	return nil
}

// Bytes serializes the header into a fresh 32-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	copy(b[0:4], magic)
	b[4] = h.FormatVersion
	b[5] = uint8(h.Compression)
	b[6] = h.Channels
	b[7] = h.Flags
	binary.LittleEndian.PutUint32(b[8:12], h.Width)
	binary.LittleEndian.PutUint32(b[12:16], h.Height)
	binary.LittleEndian.PutUint32(b[16:20], h.UncompressedLen)
	binary.LittleEndian.PutUint32(b[20:24], h.CompressedLen)
	binary.LittleEndian.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseHeader parses a Header from the start of a blob.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 32
//     bytes; surplus is ignored)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize, magic, version or field validation
//     errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
