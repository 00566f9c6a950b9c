package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSobelCatalogCounts(t *testing.T) {
	c := Sobel()
	require.Equal(t, Modes, c.Modes())

	assert.Len(t, c.Combinations(Mode3x3), 3*2*6*2)
	assert.Len(t, c.Combinations(Mode3x3ROI), 3*2*6*3)
	assert.Len(t, c.Combinations(Mode5x5), 3*2*5*4)
	assert.Len(t, c.Combinations(Mode5x5ROI), 3*2*5*5)
	assert.Equal(t, 72+108+120+150, c.Total())
}

func TestCombinationsStayInsideTheirDimensions(t *testing.T) {
	c := Sobel()
	for _, m := range c.Modes() {
		dims := c.Dimensions(m)
		require.Len(t, dims, 4)
		for i, combo := range c.Combinations(m) {
			assert.Equal(t, m, combo.Mode)
			assert.Equal(t, i, combo.Index)
			for d, token := range combo.Tokens() {
				assert.Containsf(t, dims[d].Values, token, "mode %s index %d dimension %s", m, i, dims[d].Name)
			}
		}
	}
}

func TestCombinationOrderOuterSlowest(t *testing.T) {
	c := Sobel()
	combos := c.Combinations(Mode3x3)

	first := combos[0]
	assert.Equal(t, SizeODD, first.Size)
	assert.Equal(t, Depth16S, first.Depth)
	assert.Equal(t, Order{0, 1}, first.Order)
	assert.Equal(t, "BORDER_REPLICATE", first.Border.String())

	second := combos[1]
	assert.Equal(t, first.Order, second.Order)
	assert.Equal(t, "BORDER_CONSTANT", second.Border.String())

	last := combos[len(combos)-1]
	assert.Equal(t, SizeVGA, last.Size)
	assert.Equal(t, Depth32F, last.Depth)
	assert.Equal(t, Order{2, 2}, last.Order)
}

func TestBorderFlagsResolvedAtBuild(t *testing.T) {
	c := Sobel()

	combo, ok := c.At(Mode3x3ROI, 1)
	require.True(t, ok)
	assert.True(t, combo.Border.Compound())
	assert.Equal(t, []BorderTag{BorderReplicate, BorderIsolated}, combo.Border.Tags)
	assert.Equal(t, BorderFlag(1|16), combo.Border.Flag)

	combo, ok = c.At(Mode5x5, 3)
	require.True(t, ok)
	assert.False(t, combo.Border.Compound())
	assert.Equal(t, BorderFlag(4), combo.Border.Flag)

	_, ok = c.At(Mode5x5ROI, 150)
	assert.False(t, ok)
	_, ok = c.At(Mode(7), 0)
	assert.False(t, ok)
}

func TestModeProperties(t *testing.T) {
	assert.Equal(t, 3, Mode3x3.KernelSize())
	assert.Equal(t, 3, Mode3x3ROI.KernelSize())
	assert.Equal(t, 5, Mode5x5.KernelSize())
	assert.Equal(t, 5, Mode5x5ROI.KernelSize())

	assert.False(t, Mode3x3.ROI())
	assert.True(t, Mode3x3ROI.ROI())
	assert.False(t, Mode5x5.ROI())
	assert.True(t, Mode5x5ROI.ROI())
}

func TestParseBorder(t *testing.T) {
	b, err := ParseBorder("BORDER_CONSTANT|BORDER_ISOLATED")
	require.NoError(t, err)
	assert.Equal(t, BorderFlag(16), b.Flag)
	assert.Equal(t, "BORDER_CONSTANT|BORDER_ISOLATED", b.String())

	_, err = ParseBorder("BORDER_SHINY")
	assert.Error(t, err)
}

func TestNewRejectsBadSpecs(t *testing.T) {
	_, err := New(ModeSpec{Mode: Mode5x5})
	assert.Error(t, err, "mode out of position")

	_, err = New(ModeSpec{Mode: Mode3x3, Depths: []Depth{"16S"}})
	assert.Error(t, err, "malformed depth")

	_, err = New(ModeSpec{Mode: Mode3x3, Borders: []string{"BORDER_NOPE"}})
	assert.Error(t, err, "unknown border")
}

func TestDepthWellFormed(t *testing.T) {
	assert.True(t, Depth16S.WellFormed())
	assert.True(t, Depth("CV_32fC1").WellFormed())
	assert.False(t, Depth("CV_32FC3").WellFormed())
	assert.False(t, Depth("32F").WellFormed())
}
