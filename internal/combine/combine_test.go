package combine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductOrder(t *testing.T) {
	got := Product([]string{"a", "b"}, []string{"1", "2", "3"})
	want := [][]string{
		{"a", "1"}, {"a", "2"}, {"a", "3"},
		{"b", "1"}, {"b", "2"}, {"b", "3"},
	}
	assert.Equal(t, want, got)
}

func TestProductLengthAndMembership(t *testing.T) {
	dims := [][]int{
		{1, 2, 3},
		{10, 20},
		{100, 200, 300, 400},
		{7},
	}
	got := Product(dims...)
	require.Len(t, got, 3*2*4*1)
	assert.Equal(t, len(got), Count(dims...))

	for n, tuple := range got {
		require.Len(t, tuple, len(dims))
		for i, v := range tuple {
			assert.Containsf(t, dims[i], v, "tuple %d position %d", n, i)
		}
	}

	seen := make(map[[4]int]bool, len(got))
	for _, tuple := range got {
		key := [4]int{tuple[0], tuple[1], tuple[2], tuple[3]}
		assert.False(t, seen[key], "duplicate tuple %v", tuple)
		seen[key] = true
	}
}

func TestProductSingleDimension(t *testing.T) {
	got := Product([]string{"x", "y", "z"})
	assert.Equal(t, [][]string{{"x"}, {"y"}, {"z"}}, got)
}

func TestProductEmpty(t *testing.T) {
	assert.Empty(t, Product[string]())
	assert.Empty(t, Product([]string{"a", "b"}, []string{}))
	assert.Empty(t, Product([]string{}, []string{"a"}))
	assert.Equal(t, 0, Count([]string{"a"}, nil))
}

func TestProductTuplesAreIndependent(t *testing.T) {
	got := Product([]int{1, 2}, []int{3})
	got[0][0] = 99
	assert.Equal(t, 2, got[1][0])
}
