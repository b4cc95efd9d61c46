package engine

import "strings"

// Position is the complete semantic state the solver needs: the 3x3
// grid of cells, each player's reserve of off-board pieces, and whose
// turn it is.
//
// Position invariants (must hold after every completed move —
// TestReserveConservation checks invariant 1):
//
//  1. reserve[player][size] + on-board count of (player,size) == 2.
//  2. a cell has at most one piece per size (implicit in Cell's layout).
//  3. a cell's occupied sizes are a subset of {Small,Medium,Large}.
type Position struct {
	Board   [9]Cell
	Reserve [2][numSizes]uint8
	ToMove  Player
}

// NewPosition returns the starting position: empty board, two
// reserved pieces of each size for each player, P1 to move.
func NewPosition() *Position {
	pos := &Position{ToMove: P1}
	for cell := range pos.Board {
		for s := range pos.Board[cell].bySize {
			pos.Board[cell].bySize[s] = NoPlayer
		}
	}
	for pl := 0; pl < 2; pl++ {
		for s := 0; s < numSizes; s++ {
			pos.Reserve[pl][s] = 2
		}
	}
	return pos
}

// Clone returns an independent deep copy. Positions contain no
// pointers, so copying the struct is a full deep copy already; Clone
// exists to make call sites self-documenting where ownership matters
// (e.g. the solver's working position vs. a caller's position).
func (pos *Position) Clone() *Position {
	cp := *pos
	return &cp
}

// Equal reports whether two positions have identical board, reserves
// and side to move.
func (pos *Position) Equal(other *Position) bool {
	if pos.ToMove != other.ToMove || pos.Reserve != other.Reserve {
		return false
	}
	return pos.Board == other.Board
}

// String renders the board as a 3x3 grid of top-piece codes ("P1S",
// "P2L", or ".." for an empty cell), one row per line, followed by the
// side to move and reserves. Used only for logging/debugging, never on
// the solver's hot path.
func (pos *Position) String() string {
	var b strings.Builder
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(pos.Board[RankFile(r, c)].String())
		}
		b.WriteByte('\n')
	}
	b.WriteString("to move: ")
	b.WriteString(pos.ToMove.String())
	b.WriteString(" reserves: P1=")
	b.WriteString(reserveString(pos.Reserve[P1]))
	b.WriteString(" P2=")
	b.WriteString(reserveString(pos.Reserve[P2]))
	return b.String()
}

func reserveString(r [numSizes]uint8) string {
	var b strings.Builder
	for s := 0; s < numSizes; s++ {
		if s > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Size(s).String())
		b.WriteByte('=')
		b.WriteByte('0' + r[s])
	}
	return b.String()
}

// Terminal reports whether any line currently shows three same-player
// tops, and which player owns it. Checked at the start of every frame
// (including the root) so a position that is already won is never
// handed to move generation — this is the "start of turn" reveal
// check, and settles zugzwang timing: the check runs against
// whichever side is recorded as ToMove, i.e. at the start of that
// side's own turn.
func Terminal(pos *Position) (Player, bool) {
	for _, line := range lines {
		first, ok := pos.Board[line[0]].Top()
		if !ok {
			continue
		}
		all := true
		for _, ci := range line[1:] {
			p, ok := pos.Board[ci].Top()
			if !ok || p.Player != first.Player {
				all = false
				break
			}
		}
		if all {
			return first.Player, true
		}
	}
	return NoPlayer, false
}
