package compute

import (
	"errors"
	"fmt"

	"github.com/san-kum/collisim/internal/dynamo"
)

var (
	ErrPartitionGap     = errors.New("compute: partitions leave a gap")
	ErrPartitionOverlap = errors.New("compute: partitions overlap")
)

// Partition splits [0, n) into t contiguous ranges of n/t particles. The last
// range absorbs the remainder. With n < t every range but the last is empty.
// Partition returns nil when n or t is not positive.
func Partition(n, t int) []dynamo.Range {
	if n <= 0 || t <= 0 {
		return nil
	}

	per := n / t
	ranges := make([]dynamo.Range, t)
	for i := 0; i < t; i++ {
		start := i * per
		end := (i + 1) * per
		if i == t-1 {
			end = n
		}
		ranges[i] = dynamo.Range{Start: start, End: end}
	}
	return ranges
}

// Verify checks that ranges are in order, pairwise disjoint and cover [0, n)
// exactly.
func Verify(ranges []dynamo.Range, n int) error {
	next := 0
	for i, r := range ranges {
		if r.End < r.Start {
			return fmt.Errorf("range %d %v is inverted", i, r)
		}
		if r.Start > next {
			return fmt.Errorf("%w: [%d,%d) before range %d", ErrPartitionGap, next, r.Start, i)
		}
		if r.Start < next {
			return fmt.Errorf("%w: range %d %v starts before %d", ErrPartitionOverlap, i, r, next)
		}
		next = r.End
	}
	if next != max(n, 0) {
		return fmt.Errorf("%w: covered [0,%d) of [0,%d)", ErrPartitionGap, next, n)
	}
	return nil
}
