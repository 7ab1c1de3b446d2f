package transform

import (
	"context"
	"sync"

	"github.com/go-sif/reduce"
	istats "github.com/go-sif/reduce/internal/stats"
	iutil "github.com/go-sif/reduce/internal/util"
	"github.com/go-sif/reduce/reducers"
	"github.com/go-sif/reduce/types"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"
)

// initStates turns every row of a group into a weighted state. Rows with a
// zero count are dropped, and rows the reducer does not apply to are skipped.
func initStates(group reduce.Group, strategy reduce.Strategy) (states []reduce.Weighted[reduce.State], skipped int) {
	states = make([]reduce.Weighted[reduce.State], 0, len(group.Rows))
	for _, row := range group.Rows {
		if row.Count == 0 {
			continue
		}
		state, ok := strategy.Init(row.Key, row.Values)
		if !ok {
			skipped++
			continue
		}
		states = append(states, reduce.Weighted[reduce.State]{State: state, Count: row.Count})
	}
	return
}

// combineTree combines states batchSize at a time, then recombines the partial
// results with a count of 1 until a single batch remains
func combineTree(strategy reduce.Strategy, states []reduce.Weighted[reduce.State], batchSize int) reduce.State {
	if batchSize < 2 {
		return strategy.Combine(states)
	}
	for len(states) > batchSize {
		next := make([]reduce.Weighted[reduce.State], 0, (len(states)+batchSize-1)/batchSize)
		for start := 0; start < len(states); start += batchSize {
			end := start + batchSize
			if end > len(states) {
				end = len(states)
			}
			next = append(next, reduce.Weighted[reduce.State]{State: strategy.Combine(states[start:end]), Count: 1})
		}
		states = next
	}
	return strategy.Combine(states)
}

// ReduceGroup reduces the rows of a single group with strategy, combining
// partial states in batches of batchSize. A batchSize below 2 combines all
// states at once. ok is false when the reducer applied to no row. Reducer
// failures panic.
func ReduceGroup(group reduce.Group, strategy reduce.Strategy, batchSize int) (result types.Value, ok bool) {
	states, _ := initStates(group, strategy)
	if len(states) == 0 {
		return types.None, false
	}
	return strategy.Finish(combineTree(strategy, states, batchSize)), true
}

// reduceSemigroupGroup accumulates the rows of a group into a single running state
func reduceSemigroupGroup(group reduce.Group, strategy reduce.SemigroupStrategy) (result types.Value, ok bool, processed int, skipped int) {
	var acc reduce.State
	for _, row := range group.Rows {
		if row.Count == 0 {
			continue
		}
		state, applies := strategy.Init(row.Key, row.Values[0])
		if !applies {
			skipped++
			continue
		}
		processed++
		state = strategy.Multiply(state, int64(row.Count))
		if acc == nil {
			acc = state
		} else {
			acc = strategy.Plus(acc, state)
		}
	}
	if acc == nil {
		return types.None, false, processed, skipped
	}
	return strategy.Finish(acc), true, processed, skipped
}

// ReduceGroups reduces every group with r, reducing up to opts.NumWorkers groups
// concurrently. Groups the reducer applied to no row are absent from the result.
// A failed group aborts the run, unless opts.IgnoreKeyErrors is set, in which case
// the results of the other groups are returned together with a multierror.
func ReduceGroups(ctx context.Context, groups []reduce.Group, r reducers.Reducer, opts *Options) (map[types.Key]types.Value, reduce.RuntimeStatistics, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts = CloneOptions(opts)
	ensureDefaultOptionsValues(opts)
	logger := opts.logger()

	statsTracker, err := istats.NewRunStatistics()
	if err != nil {
		return nil, nil, err
	}
	statsTracker.Start()
	defer statsTracker.Finish()

	strategy := r.Strategy()
	semigroup, isSemigroup := r.SemigroupStrategy()
	logger.Infof("Run %s: reducing %d groups with %s using %d workers", statsTracker.GetRunID(), len(groups), r, opts.NumWorkers)

	runCtx, abort := context.WithCancel(ctx)
	defer abort()

	results := make(map[types.Key]types.Value, len(groups))
	var resultsLock sync.Mutex
	var wg sync.WaitGroup
	asyncErrors := iutil.CreateAsyncErrorChannel(len(groups))
	workers := semaphore.NewWeighted(int64(opts.NumWorkers))
	for _, group := range groups {
		if runCtx.Err() != nil {
			break
		}
		if err := workers.Acquire(runCtx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(group reduce.Group) {
			defer wg.Done()
			defer workers.Release(1)
			reduceOp := func() (types.Value, bool, error) {
				if isSemigroup {
					v, ok, processed, skipped := reduceSemigroupGroup(group, semigroup)
					statsTracker.RowsProcessed(processed, skipped)
					return v, ok, nil
				}
				states, skipped := initStates(group, strategy)
				statsTracker.RowsProcessed(len(states), skipped)
				if len(states) == 0 {
					return types.None, false, nil
				}
				return strategy.Finish(combineTree(strategy, states, opts.BatchSize)), true, nil
			}
			v, ok, err := iutil.SafeReduceOperation(group.Key, reduceOp)()
			if err != nil {
				statsTracker.GroupFailed()
				logger.Debugf("Run %s: group %s failed", statsTracker.GetRunID(), group.Key)
				asyncErrors <- err
				if !opts.IgnoreKeyErrors {
					abort()
				}
				return
			}
			if !ok {
				return
			}
			statsTracker.GroupReduced()
			resultsLock.Lock()
			defer resultsLock.Unlock()
			results[group.Key] = v
		}(group)
	}
	err = iutil.WaitAndCollectErrors(&wg, asyncErrors)
	if ctx.Err() != nil {
		return nil, statsTracker, ctx.Err()
	}
	if err != nil {
		merr := err.(*multierror.Error)
		if !opts.IgnoreKeyErrors {
			logger.Errorf("Run %s: aborted after a failed group", statsTracker.GetRunID())
			return nil, statsTracker, merr.Errors[0]
		}
		logger.Warnf("Run %s: %d groups failed:\n%s", statsTracker.GetRunID(), len(merr.Errors), iutil.FormatMultiError(merr.Errors))
		return results, statsTracker, merr
	}
	logger.Infof("Run %s: reduced %d groups in %s", statsTracker.GetRunID(), len(results), statsTracker.GetRuntime())
	return results, statsTracker, nil
}
