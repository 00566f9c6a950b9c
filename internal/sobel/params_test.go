package sobel

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sobel-perf/internal/catalog"
)

func TestGeometryROI(t *testing.T) {
	size := catalog.Size{Width: 100, Height: 100}

	for _, m := range []catalog.Mode{catalog.Mode3x3ROI, catalog.Mode5x5ROI} {
		g := GeometryFor(m, size)
		assert.Equal(t, catalog.Size{Width: 110, Height: 110}, g.Backing)
		assert.Equal(t, image.Pt(5, 5), g.View.Min)
		assert.Equal(t, 100, g.View.Dx())
		assert.Equal(t, 100, g.View.Dy())
		assert.True(t, g.Offset())
	}
}

func TestGeometryExact(t *testing.T) {
	size := catalog.Size{Width: 127, Height: 61}

	for _, m := range []catalog.Mode{catalog.Mode3x3, catalog.Mode5x5} {
		g := GeometryFor(m, size)
		assert.Equal(t, size, g.Backing)
		assert.Equal(t, image.Rect(0, 0, 127, 61), g.View)
		assert.False(t, g.Offset())
	}
}

func TestBuild(t *testing.T) {
	c := catalog.Sobel()

	combo, ok := c.At(catalog.Mode3x3ROI, 64)
	require.True(t, ok)
	p := Build(combo)
	assert.Equal(t, 3, p.KernelSize)
	assert.Equal(t, 0, p.Dx)
	assert.Equal(t, 2, p.Dy)
	assert.Equal(t, catalog.Depth32F, p.Depth)
	assert.Equal(t, catalog.BorderFlag(1|16), p.Border)
	assert.Equal(t, catalog.Size{Width: 330, Height: 250}, p.Geometry.Backing)
	assert.Equal(t, "sobel", p.Name())
	assert.Contains(t, p.String(), "borderType=BORDER_REPLICATE|BORDER_ISOLATED")

	for _, m := range c.Modes() {
		for _, combo := range c.Combinations(m) {
			p := Build(combo)
			assert.Equal(t, m.KernelSize(), p.KernelSize)
			assert.Equal(t, combo.Size.Width, p.Geometry.View.Dx())
			assert.Equal(t, combo.Size.Height, p.Geometry.View.Dy())
			assert.Equal(t, m.ROI(), p.Geometry.Offset())
		}
	}
}
