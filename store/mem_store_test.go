package store

import (
	"context"
	"testing"

	"github.com/anthropics/gobbletsolve/engine"
)

func TestMemStorePutAndScanAll(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if err := s.Put(ctx, Entry{Key: 1, Outcome: engine.OutcomeP1Wins}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.PutMany(ctx, []Entry{
		{Key: 2, Outcome: engine.OutcomeDraw},
		{Key: 3, Outcome: engine.OutcomeP2Wins},
	}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	seen := map[uint64]engine.Outcome{}
	err := s.ScanAll(ctx, func(e Entry) error {
		seen[e.Key] = e.Outcome
		return nil
	})
	if err != nil {
		t.Fatalf("ScanAll: %v", err)
	}
	want := map[uint64]engine.Outcome{1: engine.OutcomeP1Wins, 2: engine.OutcomeDraw, 3: engine.OutcomeP2Wins}
	for k, v := range want {
		if seen[k] != v {
			t.Errorf("key %d: got %v, want %v", k, seen[k], v)
		}
	}
}

func TestMemStoreMeta(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if err := s.PutMeta(ctx, "run_id", []byte("abc")); err != nil {
		t.Fatalf("PutMeta: %v", err)
	}
	got := map[string][]byte{}
	err := s.ScanMeta(ctx, func(k string, v []byte) error {
		got[k] = v
		return nil
	})
	if err != nil {
		t.Fatalf("ScanMeta: %v", err)
	}
	if string(got["run_id"]) != "abc" {
		t.Errorf("expected run_id=abc, got %q", got["run_id"])
	}
}

func TestMemStoreClear(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	s.Put(ctx, Entry{Key: 1, Outcome: engine.OutcomeDraw})
	s.PutMeta(ctx, "k", []byte("v"))

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	count := 0
	s.ScanAll(ctx, func(e Entry) error { count++; return nil })
	if count != 0 {
		t.Errorf("expected no entries after Clear, got %d", count)
	}
	metaCount := 0
	s.ScanMeta(ctx, func(k string, v []byte) error { metaCount++; return nil })
	if metaCount != 0 {
		t.Errorf("expected no metadata after Clear, got %d", metaCount)
	}
}
