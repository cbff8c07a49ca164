// Package testutil holds helpers shared by ledger tests.
package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	dErrors "carbonledger/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations, bucketed by
// the domain error code each call returned.
type ConcurrentResult struct {
	Successes int32
	Rejected  map[dErrors.Code]int32
	Other     int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	total := r.Successes + r.Other
	for _, n := range r.Rejected {
		total += n
	}
	return total
}

// RunConcurrent starts all goroutines together and collects outcomes.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes, other atomic.Int32
	rejected := make(map[dErrors.Code]int32)
	start := make(chan struct{})

	for i := range goroutines {
		wg.Go(func() {
			<-start
			err := fn(i)
			if err == nil {
				successes.Add(1)
				return
			}
			var domainErr *dErrors.Error
			if !errors.As(err, &domainErr) {
				other.Add(1)
				return
			}
			mu.Lock()
			rejected[domainErr.Code]++
			mu.Unlock()
		})
	}
	close(start)
	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Rejected:  rejected,
		Other:     other.Load(),
	}
}
