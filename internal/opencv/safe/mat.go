package safe

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// MemoryTracker interface to avoid import cycles
type MemoryTracker interface {
	TrackAllocation(id uint64, size int64, tag string)
	TrackDeallocation(id uint64, tag string)
}

// Mat owns a gocv.Mat. A Mat created by Region is a view into its parent's
// data and must be closed before the parent.
type Mat struct {
	mat        gocv.Mat
	isValid    int32
	mu         sync.RWMutex
	id         uint64
	memTracker MemoryTracker
	tag        string
	parent     *Mat
	views      int32
}

var nextMatID uint64

func NewMat(rows, cols int, matType gocv.MatType) (*Mat, error) {
	return NewMatWithTracker(rows, cols, matType, nil, "")
}

func NewMatWithTracker(rows, cols int, matType gocv.MatType, memTracker MemoryTracker, tag string) (*Mat, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	mat := gocv.NewMatWithSize(rows, cols, matType)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to create Mat with size %dx%d", cols, rows)
	}

	safeMat := &Mat{
		mat:        mat,
		isValid:    1,
		id:         atomic.AddUint64(&nextMatID, 1),
		memTracker: memTracker,
		tag:        tag,
	}

	if memTracker != nil {
		memTracker.TrackAllocation(safeMat.id, ByteSize(rows, cols, matType), tag)
	}

	// Set finalizer for cleanup if Close() is not called
	runtime.SetFinalizer(safeMat, (*Mat).finalize)

	return safeMat, nil
}

// Region returns a view of rect sharing this Mat's data. Views are tracked
// with zero size so that an unclosed view still shows up as a leak.
func (sm *Mat) Region(rect image.Rectangle) (*Mat, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return nil, fmt.Errorf("cannot take region of invalid Mat")
	}

	bounds := image.Rect(0, 0, sm.mat.Cols(), sm.mat.Rows())
	if rect.Empty() || !rect.In(bounds) {
		return nil, fmt.Errorf("region %v outside Mat bounds %v", rect, bounds)
	}

	view := &Mat{
		mat:        sm.mat.Region(rect),
		isValid:    1,
		id:         atomic.AddUint64(&nextMatID, 1),
		memTracker: sm.memTracker,
		tag:        sm.tag + "_view",
		parent:     sm,
	}
	atomic.AddInt32(&sm.views, 1)

	if sm.memTracker != nil {
		sm.memTracker.TrackAllocation(view.id, 0, view.tag)
	}

	runtime.SetFinalizer(view, (*Mat).finalize)
	return view, nil
}

func (sm *Mat) IsValid() bool {
	return atomic.LoadInt32(&sm.isValid) == 1
}

// IsView reports whether the Mat was created by Region.
func (sm *Mat) IsView() bool {
	return sm.parent != nil
}

// OpenViews is the number of live views taken from this Mat.
func (sm *Mat) OpenViews() int {
	return int(atomic.LoadInt32(&sm.views))
}

func (sm *Mat) Empty() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return true
	}

	return sm.mat.Empty()
}

func (sm *Mat) Rows() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Rows()
}

func (sm *Mat) Cols() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Cols()
}

func (sm *Mat) Type() gocv.MatType {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return gocv.MatTypeCV8UC1
	}

	return sm.mat.Type()
}

// IsContinuous is false for a strict sub-region of a larger buffer.
func (sm *Mat) IsContinuous() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return false
	}

	return sm.mat.IsContinuous()
}

// GetMat exposes the underlying Mat. The caller must not close it.
func (sm *Mat) GetMat() gocv.Mat {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.mat
}

// MatPtr is GetMat for output parameters.
func (sm *Mat) MatPtr() *gocv.Mat {
	return &sm.mat
}

func (sm *Mat) ID() uint64 {
	return sm.id
}

func (sm *Mat) Tag() string {
	return sm.tag
}

// Close releases the Mat. It is safe to call more than once.
func (sm *Mat) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if atomic.CompareAndSwapInt32(&sm.isValid, 1, 0) {
		if sm.memTracker != nil {
			sm.memTracker.TrackDeallocation(sm.id, sm.tag)
		}

		sm.mat.Close()

		if sm.parent != nil {
			atomic.AddInt32(&sm.parent.views, -1)
		}

		// Clear finalizer since we're cleaning up manually
		runtime.SetFinalizer(sm, nil)
	}
}

// finalize is called by Go's garbage collector as last resort cleanup
func (sm *Mat) finalize() {
	if atomic.LoadInt32(&sm.isValid) == 1 {
		sm.Close()
	}
}

// ByteSize estimates the buffer size of a rows x cols Mat of matType.
func ByteSize(rows, cols int, matType gocv.MatType) int64 {
	return int64(rows) * int64(cols) * int64(elemSize(matType))
}

func elemSize(matType gocv.MatType) int {
	switch matType {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8SC1:
		return 1
	case gocv.MatTypeCV8UC3:
		return 3
	case gocv.MatTypeCV8UC4:
		return 4
	case gocv.MatTypeCV16UC1, gocv.MatTypeCV16SC1:
		return 2
	case gocv.MatTypeCV16UC3, gocv.MatTypeCV16SC3:
		return 6
	case gocv.MatTypeCV16UC4:
		return 8
	case gocv.MatTypeCV32FC1, gocv.MatTypeCV32SC1:
		return 4
	case gocv.MatTypeCV32FC3:
		return 12
	case gocv.MatTypeCV32FC4:
		return 16
	case gocv.MatTypeCV64FC1:
		return 8
	default:
		return 1
	}
}
