// Package fec implements the XOR-parity redundancy layer appended to
// payloads before they are laid out on a grid.
//
// Encoding appends floor(|payload| * ratio) redundancy bytes; redundancy
// byte i is the XOR of the 8 payload bytes at (j*fecSize + i) mod
// |payload| for j = 0..7. Decoding verifies each redundancy byte and,
// for each mismatch, searches the 8 contributing payload positions for a
// single-bit flip that satisfies the parity equation, accepting the
// first hit. The search is first-fit and deliberately not optimal: a
// flip can satisfy parity without being the actual corruption, and
// multi-byte damage within one block or damage to the redundancy bytes
// themselves is not reliably repaired. This is a best-effort corrector,
// not an erasure code.
package fec

import (
	"fmt"
	"math"

	"github.com/pixelgram/pxg/errs"
)

// contributors is the number of payload bytes XORed into one redundancy
// byte.
const contributors = 8

// minDecodeSize is the buffer size below which decoding skips
// verification entirely; such buffers are too small to validate.
const minDecodeSize = 5

// Codec encodes and decodes the redundancy suffix for one configured
// ratio. The zero value has ratio 0 and performs no redundancy work;
// construct with New to validate parameters.
type Codec struct {
	ratio       float64
	maxWarnings int
}

// New creates a Codec. ratio is the redundancy-to-payload size ratio and
// must be non-negative; maxWarnings caps how many unrecovered block
// indices a decode Report enumerates and must be non-negative.
func New(ratio float64, maxWarnings int) (Codec, error) {
	if ratio < 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return Codec{}, fmt.Errorf("%w: redundancy ratio %v must be a non-negative finite number", errs.ErrInvalidConfig, ratio)
	}
	if maxWarnings < 0 {
		return Codec{}, fmt.Errorf("%w: max warnings %d below 0", errs.ErrInvalidConfig, maxWarnings)
	}

	return Codec{ratio: ratio, maxWarnings: maxWarnings}, nil
}

// Ratio returns the configured redundancy ratio.
func (c Codec) Ratio() float64 {
	return c.ratio
}

// Report describes the outcome of a Decode pass.
type Report struct {
	// AllVerified is true when every redundancy byte matched after the
	// correction pass (or the buffer was too small to carry redundancy).
	// A false value is diagnostic, not fatal: the payload is still
	// returned and may be largely intact.
	AllVerified bool

	// Corrected lists payload positions where a single-bit flip was
	// applied.
	Corrected []int

	// Failed lists redundancy block indices that still mismatch after
	// correction, capped at the configured warning limit.
	Failed []int

	// Omitted is true when more blocks failed than Failed enumerates.
	Omitted bool
}

// Encode returns payload with the redundancy suffix appended. The input
// is not modified. Encoding is a no-op (a plain copy) when the payload
// is empty or the derived redundancy size floor(|payload|*ratio) is
// zero.
func (c Codec) Encode(payload []byte) []byte {
	n := len(payload)
	fecSize := int(float64(n) * c.ratio)
	if n == 0 || fecSize == 0 {
		return append([]byte(nil), payload...)
	}

	out := make([]byte, n+fecSize)
	copy(out, payload)
	for i := 0; i < fecSize; i++ {
		out[n+i] = parity(out[:n], fecSize, i)
	}

	return out
}

// Decode splits buffer into payload and redundancy, verifies every
// redundancy byte, and attempts a best-effort correction for each
// mismatch. The input is not modified; the returned payload is a new
// buffer.
//
// Buffers shorter than 5 bytes are returned unchanged with
// AllVerified=true: they are too small to validate. The payload size is
// recovered as round(|buffer| / (1+ratio)); callers that need exact
// recovery must keep the encode-side ratio.
func (c Codec) Decode(buffer []byte) ([]byte, Report) {
	if len(buffer) < minDecodeSize {
		return append([]byte(nil), buffer...), Report{AllVerified: true}
	}

	originalSize := int(math.Round(float64(len(buffer)) / (1 + c.ratio)))
	fecSize := len(buffer) - originalSize
	if fecSize <= 0 || originalSize < 1 {
		return append([]byte(nil), buffer...), Report{AllVerified: true}
	}

	payload := append([]byte(nil), buffer[:originalSize]...)
	stored := buffer[originalSize:]

	// Syndrome pass: find the redundancy blocks that do not verify.
	var mismatched []int
	for i := 0; i < fecSize; i++ {
		if stored[i] != parity(payload, fecSize, i) {
			mismatched = append(mismatched, i)
		}
	}
	if len(mismatched) == 0 {
		return payload, Report{AllVerified: true}
	}

	rep := Report{}

	// Correction pass: one accepted flip per mismatching block. The
	// candidate test assumes the position contributes exactly once, so
	// the recomputed value is calc with the old byte swapped for the
	// flipped one.
	for _, i := range mismatched {
		calc := parity(payload, fecSize, i)
		if calc == stored[i] {
			continue // repaired as a side effect of an earlier flip
		}

	scan:
		for j := 0; j < contributors; j++ {
			pos := (j*fecSize + i) % originalSize
			orig := payload[pos]
			for bit := 0; bit < 8; bit++ {
				test := orig ^ (1 << bit)
				if calc^orig^test == stored[i] {
					payload[pos] = test
					rep.Corrected = append(rep.Corrected, pos)
					break scan
				}
			}
		}
	}

	// Re-verify everything; enumerate residual failures up to the cap.
	rep.AllVerified = true
	for i := 0; i < fecSize; i++ {
		if stored[i] == parity(payload, fecSize, i) {
			continue
		}

		rep.AllVerified = false
		if len(rep.Failed) >= c.maxWarnings {
			rep.Omitted = true
			break
		}
		rep.Failed = append(rep.Failed, i)
	}

	return payload, rep
}

// parity computes the redundancy byte for block i: the XOR of the 8
// payload bytes at (j*fecSize + i) mod |payload|.
func parity(payload []byte, fecSize, i int) byte {
	var b byte
	for j := 0; j < contributors; j++ {
		b ^= payload[(j*fecSize+i)%len(payload)]
	}

	return b
}
