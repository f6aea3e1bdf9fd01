package grid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/quant"
)

func TestMapper_Layout(t *testing.T) {
	// Interval width 5, filler max 10: anchor(i) = 13 + 5i.
	m := NewMapper(mustScheme(t, 5, 10))

	symbols := []quant.Symbol{
		quant.Data(0), quant.Data(1), quant.Filler(),
		quant.Data(48),
	}

	g, err := m.Layout(symbols, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, g.Width())
	require.Equal(t, 2, g.Height())
	require.Equal(t, 3, g.Channels())

	want := []byte{
		13, 18, 0, // pixel 0: anchors for 0 and 1, filler stays zero
		253, 0, 0, // pixel 1: anchor for 48, then unused channels
		0, 0, 0,
		0, 0, 0,
	}
	require.Equal(t, want, g.Bytes())
}

func TestMapper_Layout_Capacity(t *testing.T) {
	m := NewMapper(mustScheme(t, 5, 10))

	// 12 symbols exactly fill 2x2; a 13th needs a fifth pixel.
	fits := make([]quant.Symbol, 12)
	_, err := m.Layout(fits, 2, 2)
	require.NoError(t, err)

	overflow := make([]quant.Symbol, 13)
	_, err = m.Layout(overflow, 2, 2)
	require.ErrorIs(t, err, errs.ErrGridCapacity)

	_, err = m.Layout(fits, 0, 2)
	require.ErrorIs(t, err, errs.ErrInvalidDimensions)
}

func TestMapper_Extract(t *testing.T) {
	m := NewMapper(mustScheme(t, 5, 10))

	g, err := FromBytes(2, 2, 3, []byte{
		13, 18, 0, // mixed pixel: data, data, filler channel
		0, 0, 0, // whole-filler pixel
		253, 13, 13, // all data
		5, 10, 3, // all channels in the filler band
	})
	require.NoError(t, err)

	want := []quant.Symbol{
		quant.Data(0), quant.Data(1), quant.Filler(),
		quant.Filler(), quant.Filler(), quant.Filler(),
		quant.Data(48), quant.Data(0), quant.Data(0),
		quant.Filler(), quant.Filler(), quant.Filler(),
	}
	require.Equal(t, want, m.Extract(g))
}

func TestMapper_Extract_AlphaIgnored(t *testing.T) {
	m := NewMapper(mustScheme(t, 5, 10))

	g, err := FromBytes(1, 2, 4, []byte{
		200, 20, 30, 255,
		0, 0, 0, 99, // filler pixel regardless of alpha
	})
	require.NoError(t, err)

	want := []quant.Symbol{
		quant.Data(37), quant.Data(1), quant.Data(3),
		quant.Filler(), quant.Filler(), quant.Filler(),
	}
	require.Equal(t, want, m.Extract(g))
}

func TestMapper_Extract_ShortBuffer(t *testing.T) {
	m := NewMapper(mustScheme(t, 5, 10))

	// 2x2 grid backed by 7 bytes: pixels 0 and 1 are complete, pixel 2
	// is partial and pixel 3 missing entirely.
	g, err := FromBytes(2, 2, 3, []byte{13, 18, 23, 28, 33, 38, 43})
	require.NoError(t, err)

	got := m.Extract(g)
	require.Len(t, got, 12)
	require.Equal(t, []quant.Symbol{
		quant.Data(0), quant.Data(1), quant.Data(2),
		quant.Data(3), quant.Data(4), quant.Data(5),
	}, got[:6])
	for _, sym := range got[6:] {
		require.True(t, sym.IsFiller())
	}
}

func TestMapper_Extract_SurplusIgnored(t *testing.T) {
	m := NewMapper(mustScheme(t, 5, 10))

	g, err := FromBytes(1, 1, 3, []byte{13, 18, 23, 200, 200, 200})
	require.NoError(t, err)

	require.Equal(t, []quant.Symbol{
		quant.Data(0), quant.Data(1), quant.Data(2),
	}, m.Extract(g))
}

func TestMapper_LayoutExtractRoundTrip(t *testing.T) {
	// Anchors always land above the filler band, so every data symbol
	// survives the trip and unused capacity comes back as filler.
	configs := []struct {
		intervalWidth int
		fillerMax     int
	}{
		{5, 10},
		{1, 10},
		{10, 9},
		{123, 9},
	}
	for _, cfg := range configs {
		scheme := mustScheme(t, cfg.intervalWidth, cfg.fillerMax)
		m := NewMapper(scheme)

		symbols := make([]quant.Symbol, 0, 40)
		for i := 0; i < 40; i++ {
			if i%7 == 3 {
				symbols = append(symbols, quant.Filler())
				continue
			}
			symbols = append(symbols, quant.Data(i%scheme.IntervalCount()))
		}

		g, err := m.Layout(symbols, 5, 4)
		require.NoError(t, err)

		got := m.Extract(g)
		require.Len(t, got, 60)
		require.Equal(t, symbols, got[:len(symbols)])
		for _, sym := range got[len(symbols):] {
			require.True(t, sym.IsFiller())
		}
	}
}

func TestMapper_ExtractTo(t *testing.T) {
	m := NewMapper(mustScheme(t, 5, 10))

	g, err := New(2, 2, 3)
	require.NoError(t, err)

	dst := make([]quant.Symbol, 12)
	m.ExtractTo(dst, g)
	for _, sym := range dst {
		require.True(t, sym.IsFiller())
	}

	require.Panics(t, func() {
		m.ExtractTo(make([]quant.Symbol, 11), g)
	})
}

func BenchmarkMapper_Layout(b *testing.B) {
	scheme := mustScheme(b, 5, 10)
	m := NewMapper(scheme)

	symbols := make([]quant.Symbol, 256*256*3)
	for i := range symbols {
		symbols[i] = quant.Data(i % scheme.IntervalCount())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := m.Layout(symbols, 256, 256)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMapper_Extract(b *testing.B) {
	scheme := mustScheme(b, 5, 10)
	m := NewMapper(scheme)

	symbols := make([]quant.Symbol, 256*256*3)
	for i := range symbols {
		symbols[i] = quant.Data(i % scheme.IntervalCount())
	}
	g, err := m.Layout(symbols, 256, 256)
	if err != nil {
		b.Fatal(err)
	}

	dst := make([]quant.Symbol, 256*256*3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.ExtractTo(dst, g)
	}
}
