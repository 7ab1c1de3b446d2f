package stats

import (
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
)

// RunStatistics contains statistics about a running reduction. Counters may be
// updated concurrently by workers.
type RunStatistics struct {
	runID        string
	startTime    time.Time
	totalRuntime time.Duration
	finished     bool

	groupsReduced int64
	groupsFailed  int64
	rowsProcessed int64
	rowsSkipped   int64
}

// NewRunStatistics creates statistics for a new run, identified by a random UUID
func NewRunStatistics() (*RunStatistics, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &RunStatistics{runID: id.String()}, nil
}

// Start begins tracking time
func (rs *RunStatistics) Start() {
	rs.startTime = time.Now()
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.totalRuntime = time.Since(rs.startTime)
	rs.finished = true
}

// GroupReduced records a group which produced a Value
func (rs *RunStatistics) GroupReduced() {
	atomic.AddInt64(&rs.groupsReduced, 1)
}

// GroupFailed records a group whose reduction failed
func (rs *RunStatistics) GroupFailed() {
	atomic.AddInt64(&rs.groupsFailed, 1)
}

// RowsProcessed records rows passed to the reducer, and how many of them it skipped
func (rs *RunStatistics) RowsProcessed(processed int, skipped int) {
	atomic.AddInt64(&rs.rowsProcessed, int64(processed))
	atomic.AddInt64(&rs.rowsSkipped, int64(skipped))
}

// GetRunID returns the unique identifier of the run
func (rs *RunStatistics) GetRunID() string {
	return rs.runID
}

// GetStartTime returns the start time of the run
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the run
func (rs *RunStatistics) GetRuntime() time.Duration {
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumGroupsReduced returns the number of groups which produced a Value
func (rs *RunStatistics) GetNumGroupsReduced() int64 {
	return atomic.LoadInt64(&rs.groupsReduced)
}

// GetNumGroupsFailed returns the number of groups whose reduction failed
func (rs *RunStatistics) GetNumGroupsFailed() int64 {
	return atomic.LoadInt64(&rs.groupsFailed)
}

// GetNumRowsProcessed returns the number of distinct rows passed to the reducer
func (rs *RunStatistics) GetNumRowsProcessed() int64 {
	return atomic.LoadInt64(&rs.rowsProcessed)
}

// GetNumRowsSkipped returns the number of rows the reducer did not apply to
func (rs *RunStatistics) GetNumRowsSkipped() int64 {
	return atomic.LoadInt64(&rs.rowsSkipped)
}
