// Package parallel runs independent solver jobs on a bounded set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// For executes f(i) for i in [0, n) and returns the error of the lowest
// index that failed. Every job runs even when an earlier one fails.
// Falls back to sequential execution if parallelism is disabled or n < 2.
func For(n int, f func(i int) error, cfg Config) error {
	errs := make([]error, n)

	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			errs[i] = f(i)
		}
		return firstError(errs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(cfg.NumWorkers, n); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = f(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return firstError(errs)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
