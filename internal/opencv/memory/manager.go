package memory

import (
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"sobel-perf/internal/debug/memtracker"
	"sobel-perf/internal/logger"
	"sobel-perf/internal/opencv/safe"
)

// DefaultMaxAllowed caps live case buffers.
const DefaultMaxAllowed = 2 * 1024 * 1024 * 1024

// Manager hands out tracked Mats and keeps the books on what is still live.
type Manager struct {
	tracker *memtracker.Tracker
	logger  logger.Logger
	mu      sync.Mutex
	live    map[uint64]*safe.Mat
	stats   Stats
}

type Stats struct {
	TotalAllocated int64
	TotalReleased  int64
	ActiveMats     int64
	MaxAllowed     int64
}

func NewManager(log logger.Logger, maxAllowed int64) *Manager {
	if log == nil {
		log = logger.NoOp{}
	}
	if maxAllowed <= 0 {
		maxAllowed = DefaultMaxAllowed
	}
	return &Manager{
		tracker: memtracker.NewTracker(false),
		logger:  log,
		live:    make(map[uint64]*safe.Mat),
		stats:   Stats{MaxAllowed: maxAllowed},
	}
}

// Tracker exposes the allocation ledger shared with every Mat and view.
func (m *Manager) Tracker() *memtracker.Tracker {
	return m.tracker
}

// GetMat allocates a rows x cols Mat unless that would exceed the limit.
func (m *Manager) GetMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error) {
	if err := safe.ValidateDimensions(cols, rows, tag); err != nil {
		return nil, err
	}

	size := safe.ByteSize(rows, cols, matType)

	m.mu.Lock()
	defer m.mu.Unlock()

	inUse := m.stats.TotalAllocated - m.stats.TotalReleased
	if inUse+size > m.stats.MaxAllowed {
		return nil, errors.Errorf("memory limit exceeded: %s in use, %s requested, limit %s",
			humanize.Bytes(uint64(inUse)), humanize.Bytes(uint64(size)), humanize.Bytes(uint64(m.stats.MaxAllowed)))
	}

	mat, err := safe.NewMatWithTracker(rows, cols, matType, m.tracker, tag)
	if err != nil {
		return nil, errors.Wrapf(err, "allocating %s", tag)
	}

	m.live[mat.ID()] = mat
	m.stats.TotalAllocated += size
	m.stats.ActiveMats++

	m.logger.Debug("MemoryManager", "allocated Mat", map[string]interface{}{
		"tag":  tag,
		"size": humanize.Bytes(uint64(size)),
	})
	return mat, nil
}

// ReleaseMat closes mat. Releasing nil or an already released Mat is a no-op.
func (m *Manager) ReleaseMat(mat *safe.Mat) {
	if mat == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.live[mat.ID()]; !exists {
		if mat.IsValid() {
			m.logger.Warning("MemoryManager", "releasing untracked Mat", map[string]interface{}{
				"tag": mat.Tag(),
			})
			mat.Close()
		}
		return
	}

	size := safe.ByteSize(mat.Rows(), mat.Cols(), mat.Type())
	mat.Close()
	delete(m.live, mat.ID())
	m.stats.TotalReleased += size
	m.stats.ActiveMats--
}

func (m *Manager) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Outstanding lists allocations, views included, that were never closed.
func (m *Manager) Outstanding() []memtracker.AllocationInfo {
	return m.tracker.DetectLeaks(0)
}

// Cleanup closes every Mat still live and returns how many there were.
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	live := make([]*safe.Mat, 0, len(m.live))
	for _, mat := range m.live {
		live = append(live, mat)
	}
	m.mu.Unlock()

	for _, mat := range live {
		m.ReleaseMat(mat)
	}

	if len(live) > 0 {
		m.logger.Warning("MemoryManager", "closed leftover Mats", map[string]interface{}{
			"count": len(live),
		})
	}
	return len(live)
}

func (m *Manager) Shutdown() {
	m.Cleanup()
}
