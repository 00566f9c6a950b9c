// Package cases materializes Sobel perf cases on top of gocv buffers.
package cases

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"sobel-perf/internal/bench"
	"sobel-perf/internal/catalog"
	"sobel-perf/internal/opencv/memory"
	"sobel-perf/internal/opencv/safe"
	"sobel-perf/internal/sobel"
)

const operation = "sobel"

var matTypes = map[catalog.Depth]gocv.MatType{
	catalog.Depth8U:  gocv.MatTypeCV8UC1,
	catalog.Depth16U: gocv.MatTypeCV16UC1,
	catalog.Depth16S: gocv.MatTypeCV16SC1,
	catalog.Depth32F: gocv.MatTypeCV32FC1,
	catalog.Depth64F: gocv.MatTypeCV64FC1,
}

// MatType maps a depth tag to its gocv type.
func MatType(d catalog.Depth) (gocv.MatType, error) {
	mt, ok := matTypes[d]
	if !ok {
		return 0, errors.Errorf("unsupported depth %q", d)
	}
	return mt, nil
}

// BorderType converts a resolved border flag. Both use OpenCV's numbering.
func BorderType(f catalog.BorderFlag) gocv.BorderType {
	return gocv.BorderType(f)
}

// SobelCase owns the input and output buffers of one case between Setup
// and Teardown.
type SobelCase struct {
	params sobel.Params
	mgr    *memory.Manager
	depth  gocv.MatType

	srcBacking *safe.Mat
	dstBacking *safe.Mat
	src        *safe.Mat
	dst        *safe.Mat
}

func New(p sobel.Params, mgr *memory.Manager) *SobelCase {
	return &SobelCase{params: p, mgr: mgr}
}

// Factory builds bench cases from catalog combinations.
func Factory(mgr *memory.Manager) func(catalog.Combination) bench.Case {
	return func(c catalog.Combination) bench.Case {
		return New(sobel.Build(c), mgr).Bench()
	}
}

// Bench binds the case's phases into a bench.Case.
func (sc *SobelCase) Bench() bench.Case {
	return bench.Case{
		Name:     sc.params.Name(),
		Params:   sc.params.String(),
		Setup:    sc.Setup,
		Run:      sc.Run,
		Teardown: sc.Teardown,
	}
}

func (sc *SobelCase) Params() sobel.Params {
	return sc.params
}

// Setup allocates both buffers and, for offset geometries, takes the
// sub-region views the operation works on. On error the buffers allocated
// so far stay owned by the case until Teardown.
func (sc *SobelCase) Setup() error {
	p := sc.params
	if err := safe.ValidateSobel(p.Dx, p.Dy, p.KernelSize); err != nil {
		return err
	}

	depth, err := MatType(p.Depth)
	if err != nil {
		return err
	}
	if err := safe.ValidateMatType(depth, operation); err != nil {
		return err
	}
	sc.depth = depth

	g := p.Geometry
	sc.srcBacking, err = sc.mgr.GetMat(g.Backing.Height, g.Backing.Width, gocv.MatTypeCV8UC1, "sobel_src")
	if err != nil {
		return errors.Wrap(err, "input buffer")
	}
	sc.dstBacking, err = sc.mgr.GetMat(g.Backing.Height, g.Backing.Width, depth, "sobel_dst")
	if err != nil {
		return errors.Wrap(err, "output buffer")
	}

	gocv.RandU(sc.srcBacking.MatPtr(), gocv.NewScalar(0, 0, 0, 0), gocv.NewScalar(256, 0, 0, 0))

	if g.Offset() {
		sc.src, err = sc.srcBacking.Region(g.View)
		if err != nil {
			return errors.Wrap(err, "input view")
		}
		sc.dst, err = sc.dstBacking.Region(g.View)
		if err != nil {
			return errors.Wrap(err, "output view")
		}
	} else {
		sc.src, sc.dst = sc.srcBacking, sc.dstBacking
	}

	if err := safe.ValidateMatForOperation(sc.src, operation); err != nil {
		return err
	}
	return safe.ValidateMatForOperation(sc.dst, operation)
}

// Run is the measured operation.
func (sc *SobelCase) Run() error {
	p := sc.params
	return gocv.Sobel(sc.src.GetMat(), sc.dst.MatPtr(), sc.depth, p.Dx, p.Dy, p.KernelSize,
		sobel.Scale, sobel.Delta, BorderType(p.Border))
}

// Teardown closes views before their backing buffers. It is idempotent.
func (sc *SobelCase) Teardown() {
	if sc.src != nil && sc.src != sc.srcBacking {
		sc.src.Close()
	}
	if sc.dst != nil && sc.dst != sc.dstBacking {
		sc.dst.Close()
	}
	sc.mgr.ReleaseMat(sc.srcBacking)
	sc.mgr.ReleaseMat(sc.dstBacking)
	sc.src, sc.dst, sc.srcBacking, sc.dstBacking = nil, nil, nil, nil
}

// Src is the input the operation reads, nil outside Setup/Teardown.
func (sc *SobelCase) Src() *safe.Mat { return sc.src }

// Dst is the output the operation writes.
func (sc *SobelCase) Dst() *safe.Mat { return sc.dst }

// Backing returns the full input and output buffers.
func (sc *SobelCase) Backing() (src, dst *safe.Mat) { return sc.srcBacking, sc.dstBacking }
