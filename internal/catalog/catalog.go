// Package catalog enumerates the parameter dimensions of the Sobel perf
// suite and expands them into per-mode combination sequences.
package catalog

import (
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"

	"sobel-perf/internal/combine"
)

// Dimension is a named axis with an ordered list of value tokens.
type Dimension struct {
	Name   string
	Values []string
}

// Combination is one concrete tuple within a mode.
type Combination struct {
	Mode   Mode
	Index  int
	Size   Size
	Depth  Depth
	Order  Order
	Border Border
}

// Tokens returns the tuple in dimension order.
func (c Combination) Tokens() []string {
	return []string{c.Size.String(), string(c.Depth), c.Order.String(), c.Border.String()}
}

// Catalog is the immutable set of combinations for every mode.
type Catalog struct {
	specs        []ModeSpec
	dimensions   [][]Dimension
	combinations [][]Combination
}

// New expands specs into a catalog. Specs must be listed in mode order
// starting at zero. Border tags are resolved to flags here, once.
func New(specs ...ModeSpec) (*Catalog, error) {
	c := &Catalog{
		specs:        specs,
		dimensions:   make([][]Dimension, len(specs)),
		combinations: make([][]Combination, len(specs)),
	}

	for i, spec := range specs {
		if int(spec.Mode) != i {
			return nil, errors.Errorf("mode spec %d declares mode %d", i, spec.Mode)
		}

		sizes := make(map[string]Size, len(spec.Sizes))
		orders := make(map[string]Order, len(spec.Orders))
		borders := make(map[string]Border, len(spec.Borders))
		dims := []Dimension{
			{Name: "size"},
			{Name: "ddepth"},
			{Name: "dxdy"},
			{Name: "borderType"},
		}
		for _, s := range spec.Sizes {
			sizes[s.String()] = s
			dims[0].Values = append(dims[0].Values, s.String())
		}
		for _, d := range spec.Depths {
			if !d.WellFormed() {
				return nil, errors.Errorf("mode %s: malformed depth tag %q", spec.Mode, d)
			}
			dims[1].Values = append(dims[1].Values, string(d))
		}
		for _, o := range spec.Orders {
			orders[o.String()] = o
			dims[2].Values = append(dims[2].Values, o.String())
		}
		for _, token := range spec.Borders {
			b, err := ParseBorder(token)
			if err != nil {
				return nil, errors.Wrapf(err, "mode %s", spec.Mode)
			}
			borders[token] = b
			dims[3].Values = append(dims[3].Values, token)
		}
		c.dimensions[i] = dims

		tuples := combine.Product(dims[0].Values, dims[1].Values, dims[2].Values, dims[3].Values)
		combos := make([]Combination, len(tuples))
		for n, tuple := range tuples {
			combos[n] = Combination{
				Mode:   spec.Mode,
				Index:  n,
				Size:   sizes[tuple[0]],
				Depth:  Depth(tuple[1]),
				Order:  orders[tuple[2]],
				Border: borders[tuple[3]],
			}
		}
		c.combinations[i] = combos
	}

	return c, nil
}

// MustNew is New that panics on error, for static tables.
func MustNew(specs ...ModeSpec) *Catalog {
	return must.M1(New(specs...))
}

// Sobel returns the catalog of the Sobel perf suite.
func Sobel() *Catalog {
	return MustNew(SobelModes()...)
}

// Modes returns the catalog's modes in search order.
func (c *Catalog) Modes() []Mode {
	modes := make([]Mode, len(c.specs))
	for i, spec := range c.specs {
		modes[i] = spec.Mode
	}
	return modes
}

// Dimensions returns the dimension list of mode m.
func (c *Catalog) Dimensions(m Mode) []Dimension {
	if int(m) < 0 || int(m) >= len(c.dimensions) {
		return nil
	}
	return c.dimensions[m]
}

// Combinations returns the ordered combinations of mode m.
func (c *Catalog) Combinations(m Mode) []Combination {
	if int(m) < 0 || int(m) >= len(c.combinations) {
		return nil
	}
	return c.combinations[m]
}

// At returns the combination at (m, index).
func (c *Catalog) At(m Mode, index int) (Combination, bool) {
	combos := c.Combinations(m)
	if index < 0 || index >= len(combos) {
		return Combination{}, false
	}
	return combos[index], true
}

// Total is the number of combinations across all modes.
func (c *Catalog) Total() int {
	total := 0
	for _, combos := range c.combinations {
		total += len(combos)
	}
	return total
}
