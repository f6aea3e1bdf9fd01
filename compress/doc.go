// Package compress provides compression codecs for flat pixel-grid
// payloads carried inside container blobs.
//
// A grid serializes to width*height*channels bytes dominated by two
// patterns: long zero runs from filler pixels and a small alphabet of
// repeated anchor intensities from data pixels. Both patterns are
// highly compressible, so a compressed container blob is routinely an
// order of magnitude smaller than the equivalent PNG.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are selected by format.CompressionType, either through
// CreateCodec (a fresh instance) or GetCodec (a shared built-in).
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone)
//
// Passes data through unchanged. Use for debugging, for overhead
// measurements, and when the grid is headed into an image file anyway.
//
// **Zstandard** (format.CompressionZstd)
//
// The default. Best ratio on grid payloads; sparse grids with large
// filler regions often compress 50x or more. Backed by the libzstd cgo
// binding when cgo is available and by a pure Go implementation
// otherwise (or under the purego build tag); the frames are
// interchangeable.
//
// **S2** (format.CompressionS2)
//
// Snappy-compatible, tuned for throughput. Noticeably faster than zstd
// at a worse ratio. Good for interactive encode paths where latency
// matters more than blob size.
//
// **LZ4** (format.CompressionLZ4)
//
// Single-block LZ4 with the fastest decompression of the set. Good for
// decode-heavy workloads. Note that LZ4 blocks do not record the
// decompressed size, so decompression sizes its buffer adaptively.
//
// # Selection Guide
//
//	| Priority              | Recommended | Reason                     |
//	|-----------------------|-------------|----------------------------|
//	| Smallest blobs        | Zstd        | Best ratio on grid data    |
//	| Fast encoding         | S2          | Highest compression speed  |
//	| Fast decoding         | LZ4         | Fastest decompression      |
//	| Transparency          | None        | Byte-for-byte readable     |
//
// # Thread Safety
//
// All built-in codecs are stateless values; internal buffer pools are
// synchronized. They are safe for concurrent use and safe to share.
package compress
