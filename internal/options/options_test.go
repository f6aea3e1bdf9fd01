package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeConfig struct {
	width   int
	label   string
	strict  bool
	applied []string
}

func (c *fakeConfig) setWidth(w int) error {
	if w < 1 {
		return errors.New("width must be positive")
	}
	c.width = w
	c.applied = append(c.applied, "width")

	return nil
}

func (c *fakeConfig) setLabel(label string) {
	c.label = label
	c.applied = append(c.applied, "label")
}

func TestNew(t *testing.T) {
	t.Run("applies and validates", func(t *testing.T) {
		cfg := &fakeConfig{}
		opt := New(func(c *fakeConfig) error { return c.setWidth(8) })

		require.NoError(t, opt.apply(cfg))
		require.Equal(t, 8, cfg.width)
	})

	t.Run("propagates error", func(t *testing.T) {
		cfg := &fakeConfig{}
		opt := New(func(c *fakeConfig) error { return c.setWidth(0) })

		err := opt.apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "width must be positive")
	})
}

func TestNoError(t *testing.T) {
	cfg := &fakeConfig{}
	opt := NoError(func(c *fakeConfig) { c.setLabel("grid") })

	require.NoError(t, opt.apply(cfg))
	require.Equal(t, "grid", cfg.label)
}

func TestApply(t *testing.T) {
	t.Run("runs options in order", func(t *testing.T) {
		cfg := &fakeConfig{}
		err := Apply(cfg,
			New(func(c *fakeConfig) error { return c.setWidth(4) }),
			NoError(func(c *fakeConfig) { c.setLabel("first") }),
			NoError(func(c *fakeConfig) { c.strict = true }),
		)

		require.NoError(t, err)
		require.Equal(t, []string{"width", "label"}, cfg.applied)
		require.True(t, cfg.strict)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &fakeConfig{}
		err := Apply(cfg,
			New(func(c *fakeConfig) error { return c.setWidth(4) }),
			New(func(c *fakeConfig) error { return c.setWidth(-1) }),
			NoError(func(c *fakeConfig) { c.setLabel("unreached") }),
		)

		require.Error(t, err)
		require.Equal(t, 4, cfg.width)
		require.Empty(t, cfg.label)
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		cfg := &fakeConfig{}
		require.NoError(t, Apply(cfg))
		require.Zero(t, cfg.width)
	})
}

func TestApplyWithPrimitiveTarget(t *testing.T) {
	var n int
	opt := NoError(func(p *int) { *p = 42 })

	require.NoError(t, Apply(&n, opt))
	require.Equal(t, 42, n)
}
