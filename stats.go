package reduce

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about a reduction run
type RuntimeStatistics interface {
	// GetRunID returns the unique identifier of the run
	GetRunID() string
	// GetStartTime returns the start time of the run
	GetStartTime() time.Time
	// GetRuntime returns the running time of the run
	GetRuntime() time.Duration
	// GetNumGroupsReduced returns the number of groups which produced a Value
	GetNumGroupsReduced() int64
	// GetNumGroupsFailed returns the number of groups whose reduction failed
	GetNumGroupsFailed() int64
	// GetNumRowsProcessed returns the number of distinct rows passed to Init
	GetNumRowsProcessed() int64
	// GetNumRowsSkipped returns the number of rows the reducer did not apply to
	GetNumRowsSkipped() int64
}
