package compress

// NoOpCompressor provides a no-operation codec that passes data through
// unchanged.
//
// Useful when the grid payload is going straight into a PNG or BMP
// anyway, for measuring the overhead of the container framing itself,
// and for debugging with byte-for-byte readable blobs.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input data as-is without copying.
//
// The returned slice shares the input's underlying memory. Callers must
// not modify the input afterwards if they plan to use the returned
// slice.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data as-is without copying.
//
// The returned slice shares the input's underlying memory. Callers must
// not modify the input afterwards if they plan to use the returned
// slice.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
