// cancel.go provides periodic cancellation polling for the solver and
// frontier enumerator: checking a context on every frame would
// dominate the cost of cheap positions, so pollInterval spaces the
// actual ctx.Done() check out over many frames instead.
package engine

import "context"

// pollInterval is how many frames the solver visits between
// ctx.Done() checks.
const pollInterval = 4096

// cancelled reports whether ctx has been cancelled, checking only
// every pollInterval calls (tracked via counter) to keep the check off
// the hot path.
func cancelled(ctx context.Context, counter *int) bool {
	*counter++
	if *counter%pollInterval != 0 {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
