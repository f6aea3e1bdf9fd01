package pool

import (
	"sync"

	"github.com/pixelgram/pxg/quant"
)

// Slice pools for the encode/decode pipelines. Symbol slices are the
// intermediate representation between the bit layer and the grid layer
// and never escape a single call, which makes them ideal pool citizens.
var (
	symbolSlicePool = sync.Pool{
		New: func() any { return &[]quant.Symbol{} },
	}
	byteSlicePool = sync.Pool{
		New: func() any { return &[]byte{} },
	}
)

// GetSymbolSlice retrieves and resizes a symbol slice from the pool.
//
// The returned slice has exactly the requested length; contents are
// unspecified and must be overwritten by the caller. If the pooled slice
// has insufficient capacity, a new slice is allocated.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []quant.Symbol: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	symbols, cleanup := pool.GetSymbolSlice(grid.Pixels() * 3)
//	defer cleanup()
//	// Use symbols slice...
func GetSymbolSlice(size int) ([]quant.Symbol, func()) {
	ptr, _ := symbolSlicePool.Get().(*[]quant.Symbol)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]quant.Symbol, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { symbolSlicePool.Put(ptr) }
}

// GetByteSlice retrieves and resizes a byte slice from the pool.
//
// The returned slice has exactly the requested length; contents are
// unspecified and must be overwritten by the caller. If the pooled slice
// has insufficient capacity, a new slice is allocated.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []byte: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	scratch, cleanup := pool.GetByteSlice(len(payload))
//	defer cleanup()
//	// Use scratch slice...
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := byteSlicePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { byteSlicePool.Put(ptr) }
}
