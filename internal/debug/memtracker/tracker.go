package memtracker

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

type AllocationInfo struct {
	ID          uint64
	Size        int64
	Tag         string
	AllocatedAt time.Time
	StackTrace  []uintptr
}

type MemoryStats struct {
	TotalAllocated   int64
	TotalDeallocated int64
	CurrentlyActive  int64
	AllocationCount  int64
	LeakCount        int64
}

// Tracker keeps a ledger of live buffer allocations keyed by buffer ID.
type Tracker struct {
	allocations  map[uint64]AllocationInfo
	mu           sync.RWMutex
	enabled      atomic.Bool
	stackTraces  atomic.Bool
	totalAlloc   int64
	totalDealloc int64
	allocCount   int64
	leakCount    int64
}

func NewTracker(enableStackTraces bool) *Tracker {
	mt := &Tracker{
		allocations: make(map[uint64]AllocationInfo),
	}
	mt.enabled.Store(true)
	mt.stackTraces.Store(enableStackTraces)
	return mt
}

func (mt *Tracker) TrackAllocation(id uint64, size int64, tag string) {
	if !mt.enabled.Load() {
		return
	}

	atomic.AddInt64(&mt.totalAlloc, size)
	atomic.AddInt64(&mt.allocCount, 1)

	info := AllocationInfo{
		ID:          id,
		Size:        size,
		Tag:         tag,
		AllocatedAt: time.Now(),
	}

	if mt.stackTraces.Load() {
		var pcs [32]uintptr
		n := runtime.Callers(3, pcs[:])
		info.StackTrace = pcs[:n]
	}

	mt.mu.Lock()
	mt.allocations[id] = info
	mt.mu.Unlock()
}

// TrackDeallocation removes id from the ledger. Releasing an ID that was
// never tracked counts towards LeakCount.
func (mt *Tracker) TrackDeallocation(id uint64, tag string) {
	if !mt.enabled.Load() {
		return
	}

	mt.mu.Lock()
	info, exists := mt.allocations[id]
	if exists {
		delete(mt.allocations, id)
		atomic.AddInt64(&mt.totalDealloc, info.Size)
	} else {
		atomic.AddInt64(&mt.leakCount, 1)
	}
	mt.mu.Unlock()
}

func (mt *Tracker) GetAllocations() map[uint64]AllocationInfo {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	result := make(map[uint64]AllocationInfo, len(mt.allocations))
	for k, v := range mt.allocations {
		result[k] = v
	}
	return result
}

func (mt *Tracker) GetStats() MemoryStats {
	mt.mu.RLock()
	currentlyActive := int64(len(mt.allocations))
	mt.mu.RUnlock()

	return MemoryStats{
		TotalAllocated:   atomic.LoadInt64(&mt.totalAlloc),
		TotalDeallocated: atomic.LoadInt64(&mt.totalDealloc),
		CurrentlyActive:  currentlyActive,
		AllocationCount:  atomic.LoadInt64(&mt.allocCount),
		LeakCount:        atomic.LoadInt64(&mt.leakCount),
	}
}

// ActiveBytes is the size of everything still allocated.
func (mt *Tracker) ActiveBytes() int64 {
	return atomic.LoadInt64(&mt.totalAlloc) - atomic.LoadInt64(&mt.totalDealloc)
}

func (mt *Tracker) SetEnabled(enabled bool) {
	mt.enabled.Store(enabled)
}

func (mt *Tracker) SetStackTracingEnabled(enabled bool) {
	mt.stackTraces.Store(enabled)
}

// DetectLeaks returns allocations older than olderThan. Zero returns every
// live allocation.
func (mt *Tracker) DetectLeaks(olderThan time.Duration) []AllocationInfo {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	threshold := time.Now().Add(-olderThan)
	var leaks []AllocationInfo

	for _, info := range mt.allocations {
		if olderThan == 0 || info.AllocatedAt.Before(threshold) {
			leaks = append(leaks, info)
		}
	}

	return leaks
}

func (mt *Tracker) GetAllocationsByTag(tag string) []AllocationInfo {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	var result []AllocationInfo
	for _, info := range mt.allocations {
		if info.Tag == tag {
			result = append(result, info)
		}
	}

	return result
}
