package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sobel-perf/internal/catalog"
)

func TestDecodeSingleBorder(t *testing.T) {
	c := catalog.Sobel()

	coord, ok := Decode("(640x480, CV_16SC1, (1,0), BORDER_CONSTANT)", c)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Mode: catalog.Mode3x3, Index: 51}, coord)

	combo, ok := c.At(coord.Mode, coord.Index)
	require.True(t, ok)
	assert.Equal(t, catalog.SizeVGA, combo.Size)
	assert.Equal(t, catalog.Depth16S, combo.Depth)
	assert.Equal(t, catalog.Order{Dx: 1, Dy: 0}, combo.Order)
	assert.Equal(t, "BORDER_CONSTANT", combo.Border.String())
}

func TestDecodeCompoundBorderOnlyMatchesCompound(t *testing.T) {
	c := catalog.Sobel()

	coord, ok := Decode("(320x240, CV_32FC1, (0,2), BORDER_REPLICATE|BORDER_ISOLATED)", c)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Mode: catalog.Mode3x3ROI, Index: 64}, coord)

	combo, _ := c.At(coord.Mode, coord.Index)
	assert.True(t, combo.Border.Compound())
	assert.Equal(t, catalog.BorderReplicate, combo.Border.Tags[0])

	single, ok := Decode("(320x240, CV_32FC1, (0,2), BORDER_REPLICATE)", c)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Mode: catalog.Mode3x3, Index: 42}, single)
}

func TestDecodeRoundTrip(t *testing.T) {
	c := catalog.Sobel()

	// First occurrence of each literal tuple, scanning modes in order.
	first := make(map[string]Coordinate)
	for _, m := range c.Modes() {
		for i, combo := range c.Combinations(m) {
			key := strings.Join(combo.Tokens(), ";")
			if _, seen := first[key]; !seen {
				first[key] = Coordinate{Mode: m, Index: i}
			}
		}
	}

	for _, m := range c.Modes() {
		for _, combo := range c.Combinations(m) {
			s := QueryFor(combo).String()
			coord, ok := Decode(s, c)
			require.Truef(t, ok, "filter %q did not resolve", s)
			assert.Equalf(t, first[strings.Join(combo.Tokens(), ";")], coord, "filter %q", s)
		}
	}
}

func TestDecodeFirstMatchPrefersLowerMode(t *testing.T) {
	c := catalog.Sobel()

	// Present in both the 3x3 and 5x5 catalogs.
	coord, ok := Decode("(127x61, CV_16SC1, (0,1), BORDER_REPLICATE)", c)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Mode: catalog.Mode3x3, Index: 0}, coord)

	// Only the 5x5 catalog carries BORDER_REFLECT.
	coord, ok = Decode("(127x61, CV_16SC1, (0,1), BORDER_REFLECT)", c)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Mode: catalog.Mode5x5, Index: 2}, coord)
}

func TestDecodeNoFilter(t *testing.T) {
	c := catalog.Sobel()

	for _, s := range []string{
		"",
		"sobel",
		"640x480, CV_16SC1, (1,0), BORDER_CONSTANT)",
		"(640x, CV_16SC1, (1,0), BORDER_CONSTANT)",
		"(axb, CV_16SC1, (1,0), BORDER_CONSTANT)",
		"(640x480, CV_16SC1, (1,0), BORDER_CONSTANT",
		"(640x480, CV_16SC1, 1,0, BORDER_CONSTANT)",
		"(640x480, CV_16SC1, (1,0), BORDER_A|BORDER_B|BORDER_C)",
		"(640x480, CV_16SC1, (1,0), )",
		// Well formed but never generated.
		"(640x480, CV_16SC1, (3,3), BORDER_CONSTANT)",
		"(640x480, CV_16SC1, (2,2), BORDER_REFLECT)",
		"(640x480, CV_16SC1, (1,0), BORDER_WRAP)",
		"(800x600, CV_16SC1, (1,0), BORDER_CONSTANT)",
		"(640x480, CV_8UC1, (1,0), BORDER_CONSTANT)",
		"(640x480, cv_16sc1, (1,0), BORDER_CONSTANT)",
		"(640x480, CV_16SC1, (1,0), BORDER_ISOLATED|BORDER_CONSTANT)",
	} {
		_, ok := Decode(s, c)
		assert.Falsef(t, ok, "filter %q should not resolve", s)
	}
}

func TestParseToleratesSurroundingText(t *testing.T) {
	q, ok := Parse("--test_param_filter=(640x480,CV_16SC1,(1,0),BORDER_CONSTANT) trailing")
	require.True(t, ok)
	assert.Equal(t, catalog.Size{Width: 640, Height: 480}, q.Size)
	assert.False(t, q.Compound())

	q, ok = Parse("(3x3) then (127x61, CV_32FC1,   (2,0), BORDER_CONSTANT|BORDER_ISOLATED)")
	require.True(t, ok)
	assert.True(t, q.Compound())
	assert.Equal(t, catalog.Order{Dx: 2, Dy: 0}, q.Order)
	assert.Equal(t, "(127x61, CV_32FC1, (2,0), BORDER_CONSTANT|BORDER_ISOLATED)", q.String())
}

func TestParseAcceptsAnyDigitPair(t *testing.T) {
	q, ok := Parse("(10x10, CV_16SC1, (7,9), BORDER_DEFAULT)")
	require.True(t, ok)
	assert.Equal(t, catalog.Order{Dx: 7, Dy: 9}, q.Order)
}

func TestDecodeLeadingZerosInSize(t *testing.T) {
	c := catalog.Sobel()

	q, ok := Parse("(0640x0480, CV_16SC1, (1,0), BORDER_CONSTANT)")
	require.True(t, ok)
	assert.Equal(t, catalog.SizeVGA, q.Size)

	coord, ok := Decode("(0640x480, CV_16SC1, (1,0), BORDER_CONSTANT)", c)
	require.True(t, ok)
	assert.Equal(t, Coordinate{Mode: catalog.Mode3x3, Index: 51}, coord)
}
