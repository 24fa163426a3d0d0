package fetch

import (
	"context"
	"sync"
)

// Result is the outcome of fetching one URL in a batch.
type Result struct {
	URL  string
	Data []byte
	Err  error
}

// All fetches every URL concurrently, at most workers at a time, and returns
// the results in input order. A failed fetch does not cancel the others.
func All(ctx context.Context, f Fetcher, urls []string, opts Options, workers int) []Result {
	results := make([]Result, len(urls))
	if workers <= 0 {
		workers = 4
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(idx int, url string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = Result{URL: url, Err: ctx.Err()}
				return
			}
			data, err := f.Fetch(ctx, url, opts)
			results[idx] = Result{URL: url, Data: data, Err: err}
		}(i, url)
	}
	wg.Wait()
	return results
}
