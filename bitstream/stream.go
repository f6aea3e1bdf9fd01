// Package bitstream implements the bit and symbol packing layer between
// raw payload bytes and quantized symbols.
//
// Bits are kept packed, MSB-first within each byte, in a Stream value.
// The conversion rules are deliberately asymmetric: converting bits to
// symbols zero-pads an incomplete trailing window (encode side), while
// converting symbols back to bits skips filler symbols entirely and
// truncates to an exact expected bit count (decode side). Unused grid
// capacity is filler and must never be reinterpreted as zero data bits.
package bitstream

import "github.com/pixelgram/pxg/quant"

// Stream is an append-only bit sequence packed MSB-first into bytes.
// Bits beyond Len() in the final byte are always zero.
type Stream struct {
	bits []byte
	n    int
}

// NewStream creates an empty stream with capacity for capacityBits bits.
func NewStream(capacityBits int) *Stream {
	return &Stream{
		bits: make([]byte, 0, (capacityBits+7)/8),
	}
}

// Len returns the number of bits in the stream.
func (s *Stream) Len() int {
	return s.n
}

// Bit returns bit i, counting MSB-first from the start of the stream.
// Panics if i is out of range.
func (s *Stream) Bit(i int) uint8 {
	if i < 0 || i >= s.n {
		panic("bitstream: bit index out of range")
	}

	return (s.bits[i/8] >> (7 - i%8)) & 1
}

// AppendBit appends one bit; any nonzero b appends a 1.
func (s *Stream) AppendBit(b uint8) {
	if s.n%8 == 0 {
		s.bits = append(s.bits, 0)
	}
	if b != 0 {
		s.bits[s.n/8] |= 1 << (7 - s.n%8)
	}
	s.n++
}

// AppendBits appends the low width bits of value, MSB first.
func (s *Stream) AppendBits(value uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		s.AppendBit(uint8(value>>i) & 1)
	}
}

// Truncate shortens the stream to n bits, clearing the vacated bits so
// the zero-padding invariant on the final byte holds. Panics if n
// exceeds the current length.
func (s *Stream) Truncate(n int) {
	if n < 0 || n > s.n {
		panic("bitstream: truncate length out of range")
	}

	byteLen := (n + 7) / 8
	s.bits = s.bits[:byteLen]
	if rem := n % 8; rem != 0 {
		s.bits[byteLen-1] &= 0xFF << (8 - rem)
	}
	s.n = n
}

// Bytes returns the stream regrouped into bytes, 8 bits MSB-first per
// byte; a final incomplete group is zero-padded on the low-order side.
// The returned slice is a copy the caller owns.
func (s *Stream) Bytes() []byte {
	out := make([]byte, len(s.bits))
	copy(out, s.bits)

	return out
}

// FromBytes creates a stream holding exactly 8*len(data) bits, each byte
// expanded MSB first. The input is copied.
func FromBytes(data []byte) *Stream {
	bits := make([]byte, len(data))
	copy(bits, data)

	return &Stream{bits: bits, n: len(data) * 8}
}

// ToSymbols groups the stream into BitsPerSymbol()-bit windows, MSB
// first, zero-padding an incomplete trailing window, and wraps each
// window value reduced modulo IntervalCount() as a data symbol. Used on
// the encode path only; the result never contains filler.
func (s *Stream) ToSymbols(scheme quant.Scheme) []quant.Symbol {
	k := scheme.BitsPerSymbol()
	count := (s.n + k - 1) / k
	symbols := make([]quant.Symbol, count)

	for i := 0; i < count; i++ {
		value := 0
		for j := 0; j < k; j++ {
			value <<= 1
			if idx := i*k + j; idx < s.n {
				value |= int(s.Bit(idx))
			}
		}
		symbols[i] = quant.Data(value % scheme.IntervalCount())
	}

	return symbols
}

// FromSymbols rebuilds a bit stream from extracted symbols. Filler
// symbols contribute nothing; each data symbol contributes the low
// BitsPerSymbol() bits of its index, MSB first. Collection stops the
// instant expectedBits bits are gathered, so trailing grid capacity
// never leaks into the payload. The result may be shorter than
// expectedBits if the symbols run out first.
func FromSymbols(symbols []quant.Symbol, scheme quant.Scheme, expectedBits int) *Stream {
	k := scheme.BitsPerSymbol()
	out := NewStream(expectedBits)
	if expectedBits <= 0 {
		return out
	}

	for _, sym := range symbols {
		index, ok := sym.Index()
		if !ok {
			continue
		}

		for i := k - 1; i >= 0; i-- {
			out.AppendBit(uint8(index>>i) & 1)
			if out.n >= expectedBits {
				return out
			}
		}
	}

	return out
}
