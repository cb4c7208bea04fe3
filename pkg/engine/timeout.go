package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/draft/pkg/drawing"
)

// EvalTimeout is the default limit for a single script evaluation.
const EvalTimeout = 5 * time.Second

// evalResult carries one evaluation back from its goroutine.
type evalResult struct {
	drawing *drawing.Drawing
	errors  []EvalError
	err     error
}

// waitWithTimeout returns the first result from ch, or an error once
// timeout elapses. A result whose generation gen is no longer current
// belongs to a superseded script and is dropped; so is the late result of
// a timed-out run, which the buffered channel absorbs.
func waitWithTimeout(
	ch <-chan evalResult,
	timeout time.Duration,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (*drawing.Drawing, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		stale := gen != *currentGen
		mu.Unlock()
		if stale {
			return nil, nil, fmt.Errorf("engine: script superseded by a newer evaluation")
		}
		return res.drawing, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("engine: script timed out after %s", timeout)
	}
}
