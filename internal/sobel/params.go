// Package sobel derives the concrete invocation parameters of one Sobel
// perf case from a catalog combination.
package sobel

import (
	"fmt"
	"image"

	"sobel-perf/internal/catalog"
)

// ROIMargin is the padding added on each side of the requested size when a
// mode works on a sub-region of a larger backing buffer.
const ROIMargin = 5

// Scale and Delta are fixed for every case.
const (
	Scale = 1.0
	Delta = 0.0
)

// Geometry describes the backing buffer and the view the operation sees.
type Geometry struct {
	Backing catalog.Size
	View    image.Rectangle
}

// Offset reports whether the view is a proper sub-region of the backing.
func (g Geometry) Offset() bool {
	return g.View.Min != image.Point{} ||
		g.View.Dx() != g.Backing.Width ||
		g.View.Dy() != g.Backing.Height
}

// Params is everything needed to run one case.
type Params struct {
	Combination catalog.Combination
	KernelSize  int
	Dx          int
	Dy          int
	Depth       catalog.Depth
	Border      catalog.BorderFlag
	Geometry    Geometry
}

// Build maps c to its invocation parameters.
func Build(c catalog.Combination) Params {
	return Params{
		Combination: c,
		KernelSize:  c.Mode.KernelSize(),
		Dx:          c.Order.Dx,
		Dy:          c.Order.Dy,
		Depth:       c.Depth,
		Border:      c.Border.Flag,
		Geometry:    GeometryFor(c.Mode, c.Size),
	}
}

// GeometryFor allocates exactly size for even modes. Odd modes get a buffer
// 2*ROIMargin larger per axis with a view centred at (ROIMargin, ROIMargin).
func GeometryFor(m catalog.Mode, size catalog.Size) Geometry {
	if !m.ROI() {
		return Geometry{
			Backing: size,
			View:    image.Rect(0, 0, size.Width, size.Height),
		}
	}
	return Geometry{
		Backing: catalog.Size{
			Width:  size.Width + 2*ROIMargin,
			Height: size.Height + 2*ROIMargin,
		},
		View: image.Rect(ROIMargin, ROIMargin, size.Width+ROIMargin, size.Height+ROIMargin),
	}
}

// Name is the suite-level case name.
func (p Params) Name() string {
	return "sobel"
}

// String is the human readable parameter set of the case.
func (p Params) String() string {
	c := p.Combination
	return fmt.Sprintf("size=%s ddepth=%s dxdy=%s ksize=%d borderType=%s mode=%s",
		c.Size, c.Depth, c.Order, p.KernelSize, c.Border, c.Mode)
}
