package cluster

import (
	"context"
	"iter"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Evaluator scores one candidate.
type Evaluator func(ctx context.Context, candidate []int64) (score int64, err error)

// Result is the best scoring candidate of a search.
type Result struct {
	Candidate []int64
	Score     int64
}

// Search evaluates all candidates concurrently, and returns the highest
// scoring one. Equal scores are broken by the lowest candidate. The first
// evaluation error, or cancellation of ctx, stops the search.
func Search(ctx context.Context, candidates iter.Seq[[]int64], eval Evaluator) (best Result, err error) {
	group, group_ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	var mutex sync.Mutex
	var found bool

	for candidate := range candidates {
		if group_ctx.Err() != nil {
			break
		}

		candidate = slices.Clone(candidate)
		group.Go(func() error {
			score, err := eval(group_ctx, candidate)
			if err != nil {
				return err
			}

			mutex.Lock()
			defer mutex.Unlock()

			better := !found || score > best.Score ||
				(score == best.Score && slices.Compare(candidate, best.Candidate) < 0)
			if better {
				best = Result{Candidate: candidate, Score: score}
				found = true
			}

			return nil
		})
	}

	err = group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		best = Result{}
		return
	}

	if !found {
		err = ErrNoCandidates
	}

	return
}

// Permutations yields every ordering of values, using Heap's algorithm.
// Each yielded slice is a fresh copy.
func Permutations(values []int64) iter.Seq[[]int64] {
	return func(yield func([]int64) bool) {
		perm := slices.Clone(values)
		count := make([]int, len(perm))

		if !yield(slices.Clone(perm)) {
			return
		}

		for n := 1; n < len(perm); {
			if count[n] >= n {
				count[n] = 0
				n++
				continue
			}

			if n%2 == 0 {
				perm[0], perm[n] = perm[n], perm[0]
			} else {
				perm[count[n]], perm[n] = perm[n], perm[count[n]]
			}

			if !yield(slices.Clone(perm)) {
				return
			}

			count[n]++
			n = 1
		}
	}
}
