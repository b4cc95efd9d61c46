package main

import (
	"context"
	"fmt"

	"github.com/anthropics/gobbletsolve/engine"
	"github.com/anthropics/gobbletsolve/store"
)

// restoreTable loads every previously-solved entry from st into the
// solver's transposition table, so a restarted run resumes instead of
// re-solving from scratch.
func restoreTable(ctx context.Context, st store.CheckpointStore, table *engine.Table) error {
	return st.ScanAll(ctx, func(e store.Entry) error {
		table.Put(e.Key, e.Outcome)
		return nil
	})
}

// checkpoint flushes every entry currently in table to st in one
// atomic batch, then records the batch size under "last_checkpoint_entries".
func checkpoint(ctx context.Context, st store.CheckpointStore, table *engine.Table) error {
	entries := make([]store.Entry, 0, table.Len())
	table.Range(func(key uint64, outcome engine.Outcome) bool {
		entries = append(entries, store.Entry{Key: key, Outcome: outcome})
		return true
	})
	if err := st.PutMany(ctx, entries); err != nil {
		return fmt.Errorf("checkpointing %d entries: %w", len(entries), err)
	}
	return st.PutMeta(ctx, "last_checkpoint_entries", []byte(fmt.Sprintf("%d", len(entries))))
}
