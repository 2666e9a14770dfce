package console

import (
	"fmt"
	"sync"
	"time"
)

type evalResult struct {
	value  string
	errors []EvalError
	err    error
}

// waitWithTimeout waits for ch for at most timeout. A result whose
// generation is no longer current is discarded. On timeout the
// evaluating goroutine keeps running until the sandbox returns.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	timeout time.Duration,
	mu *sync.Mutex,
	currentGen *uint64,
) (string, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()
		if gen != current {
			return "", nil, fmt.Errorf("console: evaluation superseded by newer request")
		}
		return res.value, res.errors, res.err
	case <-timer.C:
		return "", nil, fmt.Errorf("console: evaluation timed out after %s", timeout)
	}
}
