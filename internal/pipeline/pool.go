package pipeline

import (
	"context"
	"sync"
)

// forEach calls fn(i) for i in [0,n) on at most workers goroutines. Each
// call owns slot i of whatever the caller writes into, so results keep
// input order. Once ctx is done no further calls are started and
// ctx.Err() is returned after the running ones finish.
func forEach(ctx context.Context, n, workers int, fn func(i int)) error {
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

dispatch:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}: // acquire
		}
		// A full semaphore and a cancelled ctx can both be ready.
		if ctx.Err() != nil {
			<-sem
			break
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }() // release
			fn(idx)
		}(i)
	}
	wg.Wait()
	return ctx.Err()
}
