// moves.go deals with move generation: the gobble rule and the
// reveal-rule restriction on slides that would expose an opponent's
// winning line.
package engine

import "fmt"

// MoveKind distinguishes a Place (from reserve) from a Slide
// (board-to-board). Modeled as a tagged variant the way a systems
// implementation would, rather than leaning on reflection over tuples.
type MoveKind uint8

const (
	Place MoveKind = iota
	Slide
)

func (k MoveKind) String() string {
	if k == Place {
		return "place"
	}
	return "slide"
}

// noCell marks an unused From/To coordinate (Place has no origin).
const noCell = -1

// Move is either a Place{Size, To} or a Slide{From, To}. All
// coordinates are small integers (row-major cell indices, 0..8).
type Move struct {
	Kind MoveKind
	Size Size // meaningful for Place; for Slide it is the size of the piece being moved
	From int8 // board cell index; noCell for Place
	To   int8 // board cell index
}

func (m Move) String() string {
	switch m.Kind {
	case Place:
		r, c := RowCol(int(m.To))
		return fmt.Sprintf("Place %s->(%d,%d)", m.Size, r, c)
	default:
		fr, fc := RowCol(int(m.From))
		tr, tc := RowCol(int(m.To))
		return fmt.Sprintf("Slide (%d,%d)->(%d,%d)", fr, fc, tr, tc)
	}
}

// GenerateMoves enumerates every legal move for pos.ToMove, in a fixed
// deterministic order: all Place moves (by increasing size,
// then increasing destination cell), then all Slide moves (by
// increasing origin cell, then increasing destination cell).
func GenerateMoves(pos *Position) []Move {
	var moves []Move
	mover := pos.ToMove

	for s := Small; int(s) < numSizes; s++ {
		if pos.Reserve[mover][s] == 0 {
			continue
		}
		for cell := 0; cell < 9; cell++ {
			if pos.Board[cell].CanPlace(Piece{Player: mover, Size: s}) {
				moves = append(moves, Move{Kind: Place, Size: s, From: noCell, To: int8(cell)})
			}
		}
	}

	for origin := 0; origin < 9; origin++ {
		top, ok := pos.Board[origin].Top()
		if !ok || top.Player != mover {
			continue
		}
		moves = append(moves, slidesFrom(pos, origin, top)...)
	}

	return moves
}

// slidesFrom enumerates the legal slide destinations for the mover's
// top piece at origin, applying the reveal rule.
func slidesFrom(pos *Position, origin int, top Piece) []Move {
	opponent := top.Player.Opponent()

	// Lines through origin that become opponent-winning once the top
	// piece is lifted off (i.e. evaluated against the post-lift,
	// pre-placement board).
	var exposed []int
	for _, li := range linesThrough[origin] {
		if lineAllOpponentAfterLift(pos, lines[li], origin, opponent) {
			exposed = append(exposed, li)
		}
	}

	var candidate [9]bool
	if len(exposed) == 0 {
		for i := range candidate {
			candidate[i] = true
		}
	} else {
		for i := range candidate {
			candidate[i] = true
		}
		for _, li := range exposed {
			var inLine [9]bool
			for _, ci := range lines[li] {
				inLine[ci] = true
			}
			for i := range candidate {
				candidate[i] = candidate[i] && inLine[i]
			}
		}
	}
	candidate[origin] = false // destination may never equal origin

	var out []Move
	for dest := 0; dest < 9; dest++ {
		if !candidate[dest] {
			continue
		}
		if pos.Board[dest].CanPlace(top) {
			out = append(out, Move{Kind: Slide, Size: top.Size, From: int8(origin), To: int8(dest)})
		}
	}
	return out
}

// lineAllOpponentAfterLift reports whether every cell of line shows an
// opponent top once origin's top piece is (hypothetically) lifted off.
func lineAllOpponentAfterLift(pos *Position, line [3]int, origin int, opponent Player) bool {
	for _, ci := range line {
		var top Piece
		var ok bool
		if ci == origin {
			top, ok = topAfterLift(pos.Board[origin])
		} else {
			top, ok = pos.Board[ci].Top()
		}
		if !ok || top.Player != opponent {
			return false
		}
	}
	return true
}

// topAfterLift returns the cell's top piece as it would be once the
// current top is removed, without mutating the cell.
func topAfterLift(c Cell) (Piece, bool) {
	topSize, ok := c.TopSize()
	if !ok {
		return Piece{}, false
	}
	c.bySize[topSize] = NoPlayer
	return c.Top()
}
