package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelgram/pxg/errs"
	"github.com/pixelgram/pxg/format"
	"github.com/pixelgram/pxg/grid"
)

func testPayload(n int) []byte {
	payload := make([]byte, n)
	for i := range payload {
		payload[i] = byte(i*37 + 11)
	}

	return payload
}

// Sizes are picked so the ratio-based size recovery is exact; at 0.25
// that is every size except n = 4k+3 with n >= 7, where rounding loses
// the last byte.
func TestRoundTrip_QuarterRatio(t *testing.T) {
	cfg := newTestConfig(t)
	enc := NewEncoder(cfg)
	dec := NewDecoder(cfg)

	sizes := []int{1, 2, 4, 5, 6, 8, 9, 10, 12, 13, 16, 17, 32, 33, 64, 100, 101, 1000, 4096}
	for _, n := range sizes {
		payload := testPayload(n)

		g, err := enc.Encode(payload)
		require.NoError(t, err)

		res, err := dec.Decode(g)
		require.NoError(t, err)
		require.Equal(t, payload, res.Payload, "size %d", n)
		require.True(t, res.Report.AllVerified, "size %d", n)
	}
}

func TestRoundTrip_OtherRatios(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		sizes []int
	}{
		{name: "no redundancy", ratio: 0, sizes: []int{1, 3, 7, 11, 100, 255}},
		{name: "full redundancy", ratio: 1.0, sizes: []int{5, 6, 7, 8, 9, 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t, WithRedundancyRatio(tt.ratio))
			enc := NewEncoder(cfg)
			dec := NewDecoder(cfg)

			for _, n := range tt.sizes {
				payload := testPayload(n)

				g, err := enc.Encode(payload)
				require.NoError(t, err)

				res, err := dec.Decode(g)
				require.NoError(t, err)
				require.Equal(t, payload, res.Payload, "size %d", n)
				require.True(t, res.Report.AllVerified, "size %d", n)
			}
		})
	}
}

func TestRoundTrip_ExplicitDimensions(t *testing.T) {
	cfg := newTestConfig(t)
	enc := NewEncoder(cfg)
	dec := NewDecoder(cfg)

	payload := testPayload(256)

	g, err := enc.EncodeInto(payload, 40, 40)
	require.NoError(t, err)

	res, err := dec.Decode(g)
	require.NoError(t, err)
	require.Equal(t, payload, res.Payload)
	require.True(t, res.Report.AllVerified)
}

func TestRoundTrip_PresetMode(t *testing.T) {
	cfg := newTestConfig(t, WithSizeMode(format.SizeAuto))
	enc := NewEncoder(cfg)
	dec := NewDecoder(cfg)

	payload := testPayload(50 << 10)

	g, err := enc.Encode(payload)
	require.NoError(t, err)
	require.Equal(t, 512, g.Width())

	res, err := dec.Decode(g)
	require.NoError(t, err)
	require.Equal(t, payload, res.Payload)
	require.True(t, res.Report.AllVerified)
}

// Intensities may drift anywhere inside their interval without changing
// the decode result; that tolerance is the reason anchors exist.
func TestRoundTrip_WithinIntervalDrift(t *testing.T) {
	cfg := newTestConfig(t)
	enc := NewEncoder(cfg)
	dec := NewDecoder(cfg)

	payload := testPayload(512)

	g, err := enc.Encode(payload)
	require.NoError(t, err)

	// Anchors sit centered in width-5 intervals, so +-2 stays inside.
	// Filler values may roam the whole filler band.
	data := g.Bytes()
	for i, v := range data {
		switch {
		case v == 0 && i%3 == 0:
			data[i] = 3
		case v != 0 && i%2 == 0:
			data[i] = v + 2
		case v != 0:
			data[i] = v - 2
		}
	}

	res, err := dec.Decode(g)
	require.NoError(t, err)
	require.Equal(t, payload, res.Payload)
	require.True(t, res.Report.AllVerified)
}

// Moving one channel to a neighboring interval flips a single payload
// bit, which the redundancy layer finds and repairs.
func TestDecoder_RepairsSingleSymbolCorruption(t *testing.T) {
	cfg := newTestConfig(t)
	enc := NewEncoder(cfg)
	dec := NewDecoder(cfg)

	// 9 payload bytes carry 2 redundancy bytes. Payload byte 0 is zero,
	// so the first symbol has index 0; bumping it to index 1 flips
	// exactly payload bit 4, i.e. byte 0 becomes 0x08.
	payload := testPayload(9)
	payload[0] = 0x00

	g, err := enc.Encode(payload)
	require.NoError(t, err)

	scheme := cfg.Scheme()
	require.Equal(t, scheme.Anchor(0), g.Bytes()[0])
	g.Bytes()[0] = scheme.Anchor(1)

	res, err := dec.Decode(g)
	require.NoError(t, err)
	require.Equal(t, payload, res.Payload)
	require.True(t, res.Report.AllVerified)
	require.Equal(t, []int{0}, res.Report.Corrected)
}

func TestDecoder_EmptyGrid(t *testing.T) {
	cfg := newTestConfig(t)
	dec := NewDecoder(cfg)

	g, err := grid.New(16, 16, 3)
	require.NoError(t, err)

	res, err := dec.Decode(g)
	require.NoError(t, err)
	require.Empty(t, res.Payload)
	require.True(t, res.Report.AllVerified)
	require.Equal(t, format.PayloadBinary, res.Kind)
}

func TestDecoder_NilGrid(t *testing.T) {
	dec := NewDecoder(newTestConfig(t))

	_, err := dec.Decode(nil)
	require.ErrorIs(t, err, errs.ErrInvalidDimensions)
}

func TestDecoder_SniffsPayloadKind(t *testing.T) {
	cfg := newTestConfig(t)
	enc := NewEncoder(cfg)
	dec := NewDecoder(cfg)

	t.Run("text", func(t *testing.T) {
		payload := []byte("A plain text payload, long enough to sniff.!")
		require.Zero(t, len(payload)%4)

		g, err := enc.Encode(payload)
		require.NoError(t, err)

		res, err := dec.Decode(g)
		require.NoError(t, err)
		require.Equal(t, payload, res.Payload)
		require.Equal(t, format.PayloadText, res.Kind)
		require.Equal(t, "txt", res.Kind.Ext())
	})

	t.Run("zip", func(t *testing.T) {
		payload := []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x00, 0x00}

		g, err := enc.Encode(payload)
		require.NoError(t, err)

		res, err := dec.Decode(g)
		require.NoError(t, err)
		require.Equal(t, format.PayloadZip, res.Kind)
	})
}

func TestDecoder_ConcurrentUse(t *testing.T) {
	cfg := newTestConfig(t)
	enc := NewEncoder(cfg)
	dec := NewDecoder(cfg)

	payload := testPayload(2048)
	g, err := enc.Encode(payload)
	require.NoError(t, err)

	const goroutines = 8
	done := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			for i := 0; i < 20; i++ {
				res, err := dec.Decode(g)
				if err != nil {
					done <- err
					return
				}
				if !bytes.Equal(res.Payload, payload) {
					done <- errors.New("payload mismatch")
					return
				}
			}
			done <- nil
		}()
	}

	for i := 0; i < goroutines; i++ {
		require.NoError(t, <-done)
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	cfg, err := NewConfig(
		WithIntervalWidth(5),
		WithFillerMax(10),
		WithRedundancyRatio(0.25),
		WithMinDimension(16),
		WithMaxCorrectionWarnings(15),
	)
	if err != nil {
		b.Fatal(err)
	}
	enc := NewEncoder(cfg)
	dec := NewDecoder(cfg)

	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i * 31)
	}
	g, err := enc.Encode(payload)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(payload)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := dec.Decode(g); err != nil {
			b.Fatal(err)
		}
	}
}
