package util

import (
	"context"
	"sync"

	"github.com/go-sif/reduce"
	iutil "github.com/go-sif/reduce/internal/util"
)

// Accumulate feeds the rows of groups into Accumulators, one per worker, and
// merges them once every worker has finished. Rows are accumulated with their
// Count as the diff, so negative counts retract rows added by earlier batches.
// A group is always handled by the same worker.
func Accumulate(ctx context.Context, groups []reduce.Group, facc func() reduce.Accumulator, numWorkers int) (reduce.Accumulator, error) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	shards := make([][]reduce.Group, numWorkers)
	for _, g := range groups {
		shard := uint64(g.Key) % uint64(numWorkers)
		shards[shard] = append(shards[shard], g)
	}
	accs := make([]reduce.Accumulator, numWorkers)
	var wg sync.WaitGroup
	asyncErrors := iutil.CreateAsyncErrorChannel(numWorkers)
	for i := range shards {
		accs[i] = facc()
		wg.Add(1)
		go asyncAccumulate(ctx, shards[i], accs[i], &wg, asyncErrors)
	}
	if err := iutil.WaitAndCollectErrors(&wg, asyncErrors); err != nil {
		return nil, err
	}
	for _, acc := range accs[1:] {
		if err := accs[0].Merge(acc); err != nil {
			return nil, err
		}
	}
	return accs[0], nil
}

func asyncAccumulate(ctx context.Context, groups []reduce.Group, acc reduce.Accumulator, wg *sync.WaitGroup, errors chan<- error) {
	defer wg.Done()
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			errors <- err
			return
		}
		group := g
		accOp := iutil.SafeAccumulateOperation(group.Key, func() error {
			for _, row := range group.Rows {
				if err := acc.Accumulate(group.Key, row.Key, row.Values, row.Count); err != nil {
					return err
				}
			}
			return nil
		})
		if err := accOp(); err != nil {
			errors <- err
			return
		}
	}
}
