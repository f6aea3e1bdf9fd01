package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/grid"
)

// anchorGrid builds a grid whose data channels all sit exactly on
// anchors, cycling through the interval indices.
func anchorGrid(t *testing.T, cfg *Config, width, height, channels int) *grid.Grid {
	t.Helper()

	g, err := grid.New(width, height, channels)
	require.NoError(t, err)

	scheme := cfg.Scheme()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for ch := 0; ch < 3; ch++ {
				idx := (y*width + x + ch) % scheme.IntervalCount()
				g.Set(x, y, ch, scheme.Anchor(idx))
			}
			if channels == 4 {
				g.Set(x, y, 3, uint8(40+x*50+y*7))
			}
		}
	}

	return g
}

func TestCorrector_AlreadyPure(t *testing.T) {
	cfg := newTestConfig(t)
	cor := NewCorrector(cfg)

	g := anchorGrid(t, cfg, 4, 2, 3)

	out, rep, err := cor.Correct(g)
	require.NoError(t, err)
	require.Same(t, g, out)
	require.True(t, rep.AlreadyPure)
	require.Zero(t, rep.Deviations)
	require.Zero(t, rep.FillerPixels)
	require.Zero(t, rep.DeviationRatio)
}

func TestCorrector_SnapsDriftToAnchors(t *testing.T) {
	cfg := newTestConfig(t)
	cor := NewCorrector(cfg)
	scheme := cfg.Scheme()

	pure := anchorGrid(t, cfg, 2, 2, 3)
	g := pure.Clone()

	// Push three channels off their anchors, staying inside the
	// intervals so the decoded indices do not move.
	g.Set(0, 0, 0, g.At(0, 0, 0)+2)
	g.Set(1, 0, 1, g.At(1, 0, 1)-2)
	g.Set(0, 1, 2, g.At(0, 1, 2)+1)
	before := append([]byte(nil), g.Bytes()...)

	out, rep, err := cor.Correct(g)
	require.NoError(t, err)
	require.NotSame(t, g, out)
	require.Equal(t, pure.Bytes(), out.Bytes())
	require.False(t, rep.AlreadyPure)
	require.Equal(t, 3, rep.Deviations)
	require.Zero(t, rep.FillerPixels)
	require.Equal(t, 0.25, rep.DeviationRatio) // 3 of 4*3 surveyed channels

	// The input grid is left as it was.
	require.Equal(t, before, g.Bytes())
	require.Equal(t, scheme.Anchor(0), out.At(0, 0, 0))
}

func TestCorrector_NormalizesFillerPixels(t *testing.T) {
	cfg := newTestConfig(t)
	cor := NewCorrector(cfg)

	g := anchorGrid(t, cfg, 2, 2, 3)

	// One pixel drops entirely into the filler band, each channel at a
	// different stray value.
	g.Set(1, 1, 0, 5)
	g.Set(1, 1, 1, 8)
	g.Set(1, 1, 2, 2)

	out, rep, err := cor.Correct(g)
	require.NoError(t, err)
	require.False(t, rep.AlreadyPure)
	require.Equal(t, 1, rep.FillerPixels)
	require.Zero(t, rep.Deviations)
	require.Zero(t, rep.DeviationRatio)

	require.Equal(t, uint8(0), out.At(1, 1, 0))
	require.Equal(t, uint8(0), out.At(1, 1, 1))
	require.Equal(t, uint8(0), out.At(1, 1, 2))
}

func TestCorrector_AlphaPassthrough(t *testing.T) {
	cfg := newTestConfig(t)
	cor := NewCorrector(cfg)

	g := anchorGrid(t, cfg, 2, 1, 4)
	g.Set(0, 0, 0, g.At(0, 0, 0)+2) // force the rewrite path

	out, rep, err := cor.Correct(g)
	require.NoError(t, err)
	require.False(t, rep.AlreadyPure)
	require.Equal(t, 4, out.Channels())
	require.Equal(t, g.At(0, 0, 3), out.At(0, 0, 3))
	require.Equal(t, g.At(1, 0, 3), out.At(1, 0, 3))
}

// A filler-valued channel inside an otherwise data-carrying pixel is
// not a deviation: extraction skips it either way. The rewrite still
// normalizes it to zero when it runs, but a grid whose only blemish is
// such a channel counts as pure and is returned untouched.
func TestCorrector_FillerChannelInDataPixel(t *testing.T) {
	cfg := newTestConfig(t)

	t.Run("zeroed when rewrite runs", func(t *testing.T) {
		cor := NewCorrector(cfg)

		g := anchorGrid(t, cfg, 2, 1, 3)
		// One straggler filler channel plus one real deviation.
		g.Set(0, 0, 1, 7)
		g.Set(1, 0, 0, g.At(1, 0, 0)+2)

		out, rep, err := cor.Correct(g)
		require.NoError(t, err)
		require.Equal(t, 1, rep.Deviations)
		require.Zero(t, rep.FillerPixels)
		require.InDelta(t, 1.0/6.0, rep.DeviationRatio, 1e-12)
		require.Equal(t, uint8(0), out.At(0, 0, 1))
	})

	t.Run("kept when grid is otherwise pure", func(t *testing.T) {
		cor := NewCorrector(cfg)

		g := anchorGrid(t, cfg, 2, 1, 3)
		g.Set(0, 0, 1, 7)

		out, rep, err := cor.Correct(g)
		require.NoError(t, err)
		require.True(t, rep.AlreadyPure)
		require.Same(t, g, out)
		require.Equal(t, uint8(7), out.At(0, 0, 1))
	})
}

func TestCorrector_AllFillerGrid(t *testing.T) {
	cfg := newTestConfig(t)
	cor := NewCorrector(cfg)

	g, err := grid.New(3, 3, 3)
	require.NoError(t, err)

	out, rep, err := cor.Correct(g)
	require.NoError(t, err)
	require.False(t, rep.AlreadyPure)
	require.Equal(t, 9, rep.FillerPixels)
	require.Zero(t, rep.Deviations)
	require.Zero(t, rep.DeviationRatio)
	require.Equal(t, g.Bytes(), out.Bytes())
}

// Correcting a drifted encoded grid reproduces the encoder's output
// byte for byte, so the corrected grid decodes like a fresh one.
func TestCorrector_RestoresEncodedGrid(t *testing.T) {
	cfg := newTestConfig(t)
	enc := NewEncoder(cfg)
	dec := NewDecoder(cfg)
	cor := NewCorrector(cfg)

	payload := testPayload(64)

	g, err := enc.Encode(payload)
	require.NoError(t, err)
	pristine := g.Clone()

	data := g.Bytes()
	for i, v := range data {
		switch {
		case v == 0 && i%5 == 0:
			data[i] = 5
		case v != 0 && i%2 == 0:
			data[i] = v + 2
		case v != 0:
			data[i] = v - 2
		}
	}

	out, rep, err := cor.Correct(g)
	require.NoError(t, err)
	require.False(t, rep.AlreadyPure)
	require.Equal(t, pristine.Bytes(), out.Bytes())

	res, err := dec.Decode(out)
	require.NoError(t, err)
	require.Equal(t, payload, res.Payload)
	require.True(t, res.Report.AllVerified)
}

func TestCorrector_NilGrid(t *testing.T) {
	cor := NewCorrector(newTestConfig(t))

	_, _, err := cor.Correct(nil)
	require.ErrorIs(t, err, errs.ErrInvalidDimensions)
}
