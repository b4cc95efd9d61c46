package engine

import "errors"

// Sentinel errors for the engine's boundary error kinds. Wrap with
// fmt.Errorf("...: %w", ErrX) at call sites that need extra context;
// callers compare with errors.Is.
var (
	// ErrIllegalMove is returned when a consumer submits a move that
	// Apply cannot find among the position's legal moves. No state is
	// changed.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidEncoding is returned when a 64-bit key or its external
	// base64 form decodes but violates a position invariant.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrCancelled is returned by Solve and EnumerateFrontier when a
	// caller-supplied cancellation signal fires mid-search. Partial
	// results (the transposition table, the frontier map) remain safe
	// to persist: only fully-resolved subtrees are ever stored.
	ErrCancelled = errors.New("search cancelled")
)
