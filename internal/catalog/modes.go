package catalog

import "fmt"

// Mode selects a kernel-size and region-of-interest regime.
type Mode int

const (
	Mode3x3 Mode = iota
	Mode3x3ROI
	Mode5x5
	Mode5x5ROI
)

// Modes lists every mode in search order.
var Modes = []Mode{Mode3x3, Mode3x3ROI, Mode5x5, Mode5x5ROI}

// KernelSize is 3 for the small-kernel modes and 5 otherwise.
func (m Mode) KernelSize() int {
	if m < Mode5x5 {
		return 3
	}
	return 5
}

// ROI reports whether cases in this mode work on an offset sub-region.
func (m Mode) ROI() bool {
	return m%2 == 1
}

func (m Mode) String() string {
	switch m {
	case Mode3x3:
		return "3x3"
	case Mode3x3ROI:
		return "3x3-roi"
	case Mode5x5:
		return "5x5"
	case Mode5x5ROI:
		return "5x5-roi"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ModeSpec holds the legal values of every dimension for one mode.
type ModeSpec struct {
	Mode    Mode
	Sizes   []Size
	Depths  []Depth
	Orders  []Order
	Borders []string
}

var (
	sobelSizes  = []Size{SizeODD, SizeQVGA, SizeVGA}
	sobelDepths = []Depth{Depth16S, Depth32F}

	sobel3x3Orders = []Order{{0, 1}, {1, 0}, {1, 1}, {0, 2}, {2, 0}, {2, 2}}
	sobelOrders    = []Order{{0, 1}, {1, 0}, {1, 1}, {0, 2}, {2, 0}}

	borders3x3 = []string{
		"BORDER_REPLICATE",
		"BORDER_CONSTANT",
	}
	borders3x3ROI = []string{
		"BORDER_DEFAULT",
		"BORDER_REPLICATE|BORDER_ISOLATED",
		"BORDER_CONSTANT|BORDER_ISOLATED",
	}
	borders5x5 = []string{
		"BORDER_REPLICATE",
		"BORDER_CONSTANT",
		"BORDER_REFLECT",
		"BORDER_REFLECT101",
	}
	borders5x5ROI = []string{
		"BORDER_DEFAULT",
		"BORDER_REPLICATE|BORDER_ISOLATED",
		"BORDER_CONSTANT|BORDER_ISOLATED",
		"BORDER_REFLECT|BORDER_ISOLATED",
		"BORDER_REFLECT101|BORDER_ISOLATED",
	}
)

// SobelModes returns the four Sobel mode specs in mode order.
func SobelModes() []ModeSpec {
	return []ModeSpec{
		{Mode: Mode3x3, Sizes: sobelSizes, Depths: sobelDepths, Orders: sobel3x3Orders, Borders: borders3x3},
		{Mode: Mode3x3ROI, Sizes: sobelSizes, Depths: sobelDepths, Orders: sobel3x3Orders, Borders: borders3x3ROI},
		{Mode: Mode5x5, Sizes: sobelSizes, Depths: sobelDepths, Orders: sobelOrders, Borders: borders5x5},
		{Mode: Mode5x5ROI, Sizes: sobelSizes, Depths: sobelDepths, Orders: sobelOrders, Borders: borders5x5ROI},
	}
}
