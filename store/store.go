// Package store persists a solver's transposition table and frontier
// metadata across runs. The interface and its badger-backed
// implementation are sized to the "checkpoint store" contract: batched
// atomic writes of canonical-key -> outcome entries, plus a small
// separate metadata namespace for run bookkeeping (last completed
// depth, run id, timestamps).
package store

import (
	"context"

	"github.com/anthropics/gobbletsolve/engine"
)

// Entry is one solved position as it is persisted: a canonical key
// and its resolved outcome.
type Entry struct {
	Key     uint64
	Outcome engine.Outcome
}

// CheckpointStore is the durability contract a solver run checkpoints
// against. Implementations must make PutMany atomic: either every
// entry in the batch lands, or none does, so a crash mid-checkpoint
// never leaves the table in a state inconsistent with its own
// metadata (e.g. a "last solved depth" that claims more than what was
// actually written).
type CheckpointStore interface {
	// Put records a single solved position.
	Put(ctx context.Context, e Entry) error
	// PutMany records a batch of solved positions atomically.
	PutMany(ctx context.Context, entries []Entry) error
	// PutMeta records a run-level key/value fact (run id, last
	// checkpoint time, resolved frontier depth, ...).
	PutMeta(ctx context.Context, key string, value []byte) error
	// ScanAll streams every persisted position entry to fn. Iteration
	// order is unspecified. fn's error aborts the scan.
	ScanAll(ctx context.Context, fn func(Entry) error) error
	// ScanMeta streams every persisted metadata key/value pair to fn.
	ScanMeta(ctx context.Context, fn func(key string, value []byte) error) error
	// Clear removes every position entry and metadata key.
	Clear(ctx context.Context) error
	// Close releases any underlying resources.
	Close() error
}
