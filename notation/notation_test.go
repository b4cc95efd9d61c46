package notation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/anthropics/gobbletsolve/engine"
)

func TestEncodeDecodeKeyRoundtrip(t *testing.T) {
	for _, key := range []uint64{0, 1, 42, 0x1FFFFFFFFFFFFF} {
		s := EncodeKey(key)
		got, err := DecodeKey(s)
		if err != nil {
			t.Fatalf("DecodeKey(%q): %v", s, err)
		}
		if got != key {
			t.Errorf("roundtrip key %d: got %d", key, got)
		}
	}
}

func TestDecodeKeyRejectsMalformed(t *testing.T) {
	if _, err := DecodeKey("not valid base64!!"); !errors.Is(err, engine.ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding for malformed base64, got %v", err)
	}
	// Valid base64 but the wrong byte length.
	if _, err := DecodeKey("AA=="); !errors.Is(err, engine.ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding for short payload, got %v", err)
	}
}

func TestMarshalUnmarshalMovePlace(t *testing.T) {
	m := engine.Move{Kind: engine.Place, Size: engine.Medium, From: -1, To: 4}
	data, err := MarshalMove(m)
	if err != nil {
		t.Fatalf("MarshalMove: %v", err)
	}
	if want := `{"type":"place","size":"M","to":[1,1]}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	got, err := UnmarshalMove(data)
	if err != nil {
		t.Fatalf("UnmarshalMove: %v", err)
	}
	if got != m {
		t.Errorf("roundtrip mismatch: got %v, want %v", got, m)
	}
}

func TestMarshalUnmarshalMoveSlide(t *testing.T) {
	m := engine.Move{Kind: engine.Slide, From: 0, To: 4}
	data, err := MarshalMove(m)
	if err != nil {
		t.Fatalf("MarshalMove: %v", err)
	}
	if want := `{"type":"slide","from":[0,0],"to":[1,1]}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	got, err := UnmarshalMove(data)
	if err != nil {
		t.Fatalf("UnmarshalMove: %v", err)
	}
	if got != m {
		t.Errorf("roundtrip mismatch: got %v, want %v", got, m)
	}
}

func TestUnmarshalMoveRejectsUnknownType(t *testing.T) {
	_, err := UnmarshalMove([]byte(`{"type":"teleport","to":[0,0]}`))
	if !errors.Is(err, engine.ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestUnmarshalMoveRejectsSlideMissingFrom(t *testing.T) {
	_, err := UnmarshalMove([]byte(`{"type":"slide","to":[1,1]}`))
	if !errors.Is(err, engine.ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestOutcomeOfBase64(t *testing.T) {
	s := engine.NewSolver()
	root := engine.NewPosition()
	rootKey := engine.Canonicalize(engine.Encode(root))
	base64Key := EncodeKey(rootKey)

	if _, ok, err := OutcomeOfBase64(s, base64Key); err != nil || ok {
		t.Fatalf("expected an unsolved root to report ok=false, got ok=%v err=%v", ok, err)
	}

	want, err := s.Solve(context.Background(), root)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	got, ok, err := OutcomeOfBase64(s, base64Key)
	if err != nil {
		t.Fatalf("OutcomeOfBase64: %v", err)
	}
	if !ok || got != want {
		t.Errorf("OutcomeOfBase64: got (%v, %v), want (%v, true)", got, ok, want)
	}
}

func TestOutcomeOfBase64RejectsMalformedKey(t *testing.T) {
	s := engine.NewSolver()
	if _, _, err := OutcomeOfBase64(s, "not valid base64!!"); !errors.Is(err, engine.ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestBestMovesMatchesSolvedTable(t *testing.T) {
	s := engine.NewSolver()
	root := engine.NewPosition()
	rootKey := engine.Canonicalize(engine.Encode(root))
	base64Key := EncodeKey(rootKey)

	if _, err := s.Solve(context.Background(), root); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	wireMoves, err := BestMoves(s, base64Key)
	if err != nil {
		t.Fatalf("BestMoves: %v", err)
	}
	if len(wireMoves) == 0 {
		t.Fatalf("expected at least one best move from the solved start position")
	}

	_, wantOutcome, ok := s.BestMove(root)
	if !ok {
		t.Fatalf("BestMove returned ok=false after a full solve")
	}

	for _, wire := range wireMoves {
		m, err := UnmarshalMove(wire)
		if err != nil {
			t.Fatalf("UnmarshalMove(%s): %v", wire, err)
		}
		outcomes := s.AllMoveOutcomes(root)
		o, ok := outcomes[m]
		if !ok {
			t.Fatalf("BestMoves returned a move not in AllMoveOutcomes: %v", m)
		}
		if o != wantOutcome {
			t.Errorf("move %v outcome %v disagrees with BestMove outcome %v", m, o, wantOutcome)
		}
	}
}

func TestMarshalFrontierSortsByDepthDescending(t *testing.T) {
	entries := []engine.FrontierEntry{
		{Key: 1, Depth: 2},
		{Key: 2, Depth: 5},
		{Key: 3, Depth: 3},
	}
	data, err := MarshalFrontier(entries)
	if err != nil {
		t.Fatalf("MarshalFrontier: %v", err)
	}

	var export FrontierExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if export.Count != 3 || export.MaxDepth != 5 || export.MinDepth != 2 {
		t.Fatalf("unexpected summary: %+v", export)
	}
	for i := 1; i < len(export.Entries); i++ {
		if export.Entries[i].Depth > export.Entries[i-1].Depth {
			t.Errorf("entries not sorted by depth descending: %+v", export.Entries)
		}
	}
}
