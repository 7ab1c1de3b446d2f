package util

import (
	"fmt"

	"github.com/go-sif/reduce"
	iutil "github.com/go-sif/reduce/internal/util"
	"github.com/go-sif/reduce/types"
)

// Collect finishes every group held by an Accumulator. A positive
// collectionLimit bounds the number of groups which may be collected. A reducer
// failing on a group is reported as an error.
func Collect(acc reduce.Accumulator, collectionLimit int) (map[types.Key]types.Value, error) {
	keys := acc.Keys()
	if collectionLimit > 0 && len(keys) > collectionLimit {
		return nil, fmt.Errorf("cannot collect %d groups, which exceeds the collection limit of %d", len(keys), collectionLimit)
	}
	results := make(map[types.Key]types.Value, len(keys))
	for _, k := range keys {
		v, ok, err := iutil.SafeResultOperation(k, func() (types.Value, bool, error) {
			return acc.Result(k)
		})()
		if err != nil {
			return nil, fmt.Errorf("unable to collect group %s: %w", k, err)
		}
		if ok {
			results[k] = v
		}
	}
	return results, nil
}
