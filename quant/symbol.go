package quant

import "strconv"

// Symbol is one quantized unit carried by a single pixel channel: either
// a data symbol holding an interval index, or the filler sentinel that
// marks a channel with no payload in it.
//
// The zero value is Data(0); construct symbols with Data or Filler.
// Consumers must branch on IsFiller (or the comma-ok Index) rather than
// compare indices against a magic constant.
type Symbol struct {
	index  int
	filler bool
}

// Data creates a data symbol carrying the given interval index.
// The index must be in [0, IntervalCount()) of the scheme in use.
func Data(index int) Symbol {
	return Symbol{index: index}
}

// Filler creates the filler sentinel symbol. Filler symbols carry zero
// payload bits and are skipped entirely when bits are reassembled.
func Filler() Symbol {
	return Symbol{filler: true}
}

// IsFiller reports whether the symbol is the filler sentinel.
func (s Symbol) IsFiller() bool {
	return s.filler
}

// Index returns the interval index and true for a data symbol, or 0 and
// false for filler.
func (s Symbol) Index() (int, bool) {
	if s.filler {
		return 0, false
	}

	return s.index, true
}

func (s Symbol) String() string {
	if s.filler {
		return "Filler"
	}

	return "Data(" + strconv.Itoa(s.index) + ")"
}
