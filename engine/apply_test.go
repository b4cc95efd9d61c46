package engine

import "testing"

// TestApplyUndoRoundtrip checks that undo(apply(p, m)) == p
// for every legal move on a handful of representative positions.
func TestApplyUndoRoundtrip(t *testing.T) {
	positions := []*Position{
		NewPosition(),
		func() *Position {
			p := NewPosition()
			p.Board[0].bySize[Small] = P1
			p.Reserve[P1][Small]--
			return p
		}(),
	}

	for i, p := range positions {
		for _, m := range GenerateMoves(p) {
			before := p.Clone()
			_, token, err := Apply(p, m)
			if err != nil {
				t.Fatalf("case %d move %v: Apply failed: %v", i, m, err)
			}
			Undo(p, token)
			if !p.Equal(before) {
				t.Errorf("case %d move %v: undo(apply(p,m)) != p\nbefore %s\nafter  %s", i, m, before, p)
			}
		}
	}
}

// TestApplyRejectsIllegalMove checks Apply leaves the position
// untouched and returns ErrIllegalMove for a move absent from
// GenerateMoves.
func TestApplyRejectsIllegalMove(t *testing.T) {
	p := NewPosition()
	before := p.Clone()
	bogus := Move{Kind: Place, Size: Large, From: noCell, To: 50}

	if _, _, err := Apply(p, bogus); err == nil {
		t.Fatalf("expected error for illegal move")
	}
	if !p.Equal(before) {
		t.Errorf("Apply mutated position despite rejecting the move")
	}
}

// TestGobbleLaw checks the strict-size gobble rule in isolation.
func TestGobbleLaw(t *testing.T) {
	c := Cell{bySize: [numSizes]Player{NoPlayer, NoPlayer, NoPlayer}}
	small := Piece{Player: P1, Size: Small}
	medium := Piece{Player: P2, Size: Medium}

	if !c.CanPlace(small) {
		t.Errorf("empty cell must accept any piece")
	}
	c.bySize[Small] = P1
	if c.CanPlace(Piece{Player: P2, Size: Small}) {
		t.Errorf("same size must not be placeable")
	}
	if !c.CanPlace(medium) {
		t.Errorf("strictly larger size must be placeable")
	}
}

// TestReserveConservation checks that reserve + on-board
// count is always 2 for each (player, size), checked along a short
// sequence of applied moves.
func TestReserveConservation(t *testing.T) {
	p := NewPosition()
	checkConservation(t, p)

	for i := 0; i < 4; i++ {
		moves := GenerateMoves(p)
		if len(moves) == 0 {
			break
		}
		if _, _, err := Apply(p, moves[0]); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		checkConservation(t, p)
	}
}

func checkConservation(t *testing.T, p *Position) {
	t.Helper()
	var onBoard [2][numSizes]uint8
	for cell := 0; cell < 9; cell++ {
		for s := 0; s < numSizes; s++ {
			switch p.Board[cell].bySize[s] {
			case P1:
				onBoard[0][s]++
			case P2:
				onBoard[1][s]++
			}
		}
	}
	for pl := 0; pl < 2; pl++ {
		for s := 0; s < numSizes; s++ {
			if p.Reserve[pl][s]+onBoard[pl][s] != 2 {
				t.Errorf("player %d size %d: reserve %d + onboard %d != 2",
					pl, s, p.Reserve[pl][s], onBoard[pl][s])
			}
		}
	}
}
