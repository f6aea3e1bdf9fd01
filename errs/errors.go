// Package errs defines sentinel errors shared across pxg packages.
//
// Callers wrap these with fmt.Errorf("%w: detail", ...) at the failure
// site and test them with errors.Is. Keeping the sentinels in one place
// lets API consumers branch on error identity without importing the
// package that produced the error.
package errs

import "errors"

var (
	// ErrInvalidConfig indicates a configuration field is outside its
	// documented range, or the derived interval count is below 2 so the
	// scheme cannot carry any payload bit.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGridCapacity indicates the symbol sequence needs more pixels
	// than the supplied grid dimensions provide.
	ErrGridCapacity = errors.New("grid capacity exceeded")

	// ErrInvalidDimensions indicates a grid width or height below 1.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrInvalidChannelCount indicates a channel count outside the
	// supported range (3 or 4).
	ErrInvalidChannelCount = errors.New("invalid channel count")
)

// Container format errors.
var (
	// ErrInvalidHeaderSize indicates the header buffer is not exactly
	// container.HeaderSize bytes.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber indicates the buffer does not start with the
	// container magic.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrUnsupportedVersion indicates a container version this build
	// does not understand.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrInvalidCompressionType indicates an unknown compression type
	// byte in a container header.
	ErrInvalidCompressionType = errors.New("invalid compression type")

	// ErrChecksumMismatch indicates the unpacked grid bytes do not hash
	// to the checksum recorded in the header.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrShortBuffer indicates a buffer shorter than its header claims.
	ErrShortBuffer = errors.New("buffer too short")
)

// Image I/O errors.
var (
	// ErrLossyFormat indicates an image format whose compression does
	// not preserve exact intensities, so encoded grids cannot survive it.
	ErrLossyFormat = errors.New("lossy image format")

	// ErrUnsupportedImageFormat indicates an image format with no
	// registered reader or writer.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
)
