package container

import (
	"fmt"
	"io"

	"github.com/pixelgram/pxg/compress"
	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/format"
	"github.com/pixelgram/pxg/grid"
	"github.com/pixelgram/pxg/internal/hash"
	"github.com/pixelgram/pxg/internal/pool"
)

// Pack frames the grid into a container blob: a header followed by the
// compressed flat grid bytes. The checksum covers the uncompressed
// bytes, so corruption anywhere in the payload is detected on unpack.
func Pack(g *grid.Grid, compression format.CompressionType) ([]byte, error) {
	header, compressed, err := seal(g, compression)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 0, HeaderSize+len(compressed))
	blob = append(blob, header.Bytes()...)
	blob = append(blob, compressed...)

	return blob, nil
}

// PackTo writes the framed blob to w. The staging buffer is pooled, so
// this is the better call for writing to files or sockets where the
// blob itself does not need to be retained.
func PackTo(w io.Writer, g *grid.Grid, compression format.CompressionType) (int64, error) {
	header, compressed, err := seal(g, compression)
	if err != nil {
		return 0, err
	}

	buf := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(buf)

	buf.MustWrite(header.Bytes())
	buf.MustWrite(compressed)

	return buf.WriteTo(w)
}

// MarkCorrected sets the corrected-advisory flag in the header of a
// packed blob. The checksum covers only the grid payload, so rewriting
// a header flag keeps the blob valid.
func MarkCorrected(blob []byte) error {
	if _, err := ParseHeader(blob); err != nil {
		return err
	}

	blob[7] |= FlagCorrected

	return nil
}

func seal(g *grid.Grid, compression format.CompressionType) (Header, []byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return Header{}, nil, err
	}

	raw := g.Bytes()
	compressed, err := codec.Compress(raw)
	if err != nil {
		return Header{}, nil, fmt.Errorf("compress grid payload: %w", err)
	}

	header := NewHeader(compression, g.Width(), g.Height(), g.Channels())
	header.UncompressedLen = uint32(len(raw))
	header.CompressedLen = uint32(len(compressed))
	header.Checksum = hash.Sum(raw)

	return header, compressed, nil
}

// Unpack restores the grid from a container blob. Bytes past the
// recorded payload length are ignored, so blobs survive framing that
// pads the tail.
//
// Returns:
//   - *grid.Grid: The restored grid
//   - error: Header validation errors, ErrShortBuffer for a truncated
//     payload, ErrInvalidCompressionType for an unknown algorithm, or
//     ErrChecksumMismatch when the payload does not hash to the header
//     checksum
func Unpack(blob []byte) (*grid.Grid, error) {
	header, err := ParseHeader(blob)
	if err != nil {
		return nil, err
	}

	payload := blob[HeaderSize:]
	if len(payload) < int(header.CompressedLen) {
		return nil, fmt.Errorf("%w: payload %d bytes, header records %d",
			errs.ErrShortBuffer, len(payload), header.CompressedLen)
	}
	payload = payload[:header.CompressedLen]

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("decompress grid payload: %w", err)
	}

	if len(raw) != int(header.UncompressedLen) || hash.Sum(raw) != header.Checksum {
		return nil, fmt.Errorf("%w: blob payload does not match its recorded checksum",
			errs.ErrChecksumMismatch)
	}

	return grid.FromBytes(int(header.Width), int(header.Height), int(header.Channels), raw)
}
