package app

import (
	"context"
	"sync"
)

type branch struct {
	name string
	run  func(ctx context.Context) error
}

type branchResult struct {
	name string
	err  error
}

// settleAll runs every branch concurrently and waits for all of them to
// finish. One branch failing never cancels or hides another; each branch
// contributes exactly one result.
func settleAll(ctx context.Context, branches []branch) []branchResult {
	results := make([]branchResult, len(branches))

	var wg sync.WaitGroup
	for i, b := range branches {
		wg.Add(1)
		go func(i int, b branch) {
			defer wg.Done()
			results[i] = branchResult{name: b.name, err: b.run(ctx)}
		}(i, b)
	}
	wg.Wait()

	return results
}
