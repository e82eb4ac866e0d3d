package monitor

import (
	"sync/atomic"
)

// WorkloadStats counts catalog operations. Visits accumulates the node
// visit counts reported by searches so the average path length can be read
// back without timing anything.
type WorkloadStats struct {
	SearchCount uint64
	HitCount    uint64
	VisitCount  uint64
	InsertCount uint64
	DeleteCount uint64
}

func NewWorkloadStats() *WorkloadStats {
	return &WorkloadStats{}
}

func (ws *WorkloadStats) RecordSearch(visits int, hit bool) {
	atomic.AddUint64(&ws.SearchCount, 1)
	atomic.AddUint64(&ws.VisitCount, uint64(visits))
	if hit {
		atomic.AddUint64(&ws.HitCount, 1)
	}
}

func (ws *WorkloadStats) RecordInsert() {
	atomic.AddUint64(&ws.InsertCount, 1)
}

func (ws *WorkloadStats) RecordDelete() {
	atomic.AddUint64(&ws.DeleteCount, 1)
}

func (ws *WorkloadStats) AverageVisits() float64 {
	searches := atomic.LoadUint64(&ws.SearchCount)
	if searches == 0 {
		return 0.0
	}
	return float64(atomic.LoadUint64(&ws.VisitCount)) / float64(searches)
}

func (ws *WorkloadStats) HitRatio() float64 {
	searches := atomic.LoadUint64(&ws.SearchCount)
	if searches == 0 {
		return 0.0
	}
	return float64(atomic.LoadUint64(&ws.HitCount)) / float64(searches)
}

// Snapshot returns the counters as a flat map for printing.
func (ws *WorkloadStats) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"searches":   atomic.LoadUint64(&ws.SearchCount),
		"hits":       atomic.LoadUint64(&ws.HitCount),
		"inserts":    atomic.LoadUint64(&ws.InsertCount),
		"deletes":    atomic.LoadUint64(&ws.DeleteCount),
		"avg_visits": ws.AverageVisits(),
		"hit_ratio":  ws.HitRatio(),
	}
}
