// Package notation implements the external wire formats: base64
// canonical position keys and the JSON move/frontier representations
// used at API and CLI boundaries. Kept separate from engine so the
// solver core never depends on an encoding format.
package notation

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/anthropics/gobbletsolve/engine"
)

// EncodeKey renders a canonical 64-bit key as standard base64 over its
// big-endian byte representation.
func EncodeKey(key uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], key)
	return base64.StdEncoding.EncodeToString(b[:])
}

// DecodeKey parses a base64 canonical key produced by EncodeKey.
func DecodeKey(s string) (uint64, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed base64: %v", engine.ErrInvalidEncoding, err)
	}
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: expected 8 bytes, got %d", engine.ErrInvalidEncoding, len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// moveWire is the JSON shape of a Move: {"type":"place","size":"M","to":[0,1]}
// or {"type":"slide","from":[0,0],"to":[1,1]}. to/from are [row, col]
// pairs rather than flat cell indices, matching the external wire
// contract.
type moveWire struct {
	Type string  `json:"type"`
	Size string  `json:"size,omitempty"`
	From *[2]int `json:"from,omitempty"`
	To   [2]int  `json:"to"`
}

// MarshalMove renders m as its JSON wire form.
func MarshalMove(m engine.Move) ([]byte, error) {
	toRow, toCol := engine.RowCol(int(m.To))
	w := moveWire{To: [2]int{toRow, toCol}}
	switch m.Kind {
	case engine.Place:
		w.Type = "place"
		w.Size = m.Size.String()
	case engine.Slide:
		w.Type = "slide"
		fromRow, fromCol := engine.RowCol(int(m.From))
		from := [2]int{fromRow, fromCol}
		w.From = &from
	}
	return json.Marshal(w)
}

// UnmarshalMove parses a move from its JSON wire form. The slide form
// carries no size, so a parsed slide always has Size Small; it equals
// a generated slide only when the piece being moved is Small.
func UnmarshalMove(data []byte) (engine.Move, error) {
	var w moveWire
	if err := json.Unmarshal(data, &w); err != nil {
		return engine.Move{}, err
	}
	to, err := cellFromRowCol(w.To)
	if err != nil {
		return engine.Move{}, err
	}
	switch w.Type {
	case "place":
		size, err := parseSize(w.Size)
		if err != nil {
			return engine.Move{}, err
		}
		return engine.Move{Kind: engine.Place, Size: size, From: -1, To: int8(to)}, nil
	case "slide":
		if w.From == nil {
			return engine.Move{}, fmt.Errorf("%w: slide move missing \"from\"", engine.ErrInvalidEncoding)
		}
		from, err := cellFromRowCol(*w.From)
		if err != nil {
			return engine.Move{}, err
		}
		return engine.Move{Kind: engine.Slide, From: int8(from), To: int8(to)}, nil
	default:
		return engine.Move{}, fmt.Errorf("%w: unknown move type %q", engine.ErrInvalidEncoding, w.Type)
	}
}

// cellFromRowCol validates a [row, col] wire pair and returns its
// row-major cell index.
func cellFromRowCol(rc [2]int) (int, error) {
	row, col := rc[0], rc[1]
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return 0, fmt.Errorf("%w: cell [%d,%d] out of range", engine.ErrInvalidEncoding, row, col)
	}
	return engine.RankFile(row, col), nil
}

func parseSize(s string) (engine.Size, error) {
	switch s {
	case "S":
		return engine.Small, nil
	case "M":
		return engine.Medium, nil
	case "L":
		return engine.Large, nil
	default:
		return 0, fmt.Errorf("%w: unknown piece size %q", engine.ErrInvalidEncoding, s)
	}
}

// FrontierExport is the JSON document produced for a solved frontier:
// a summary plus every entry, sorted by depth descending (so the
// deepest, most work-constrained boundary positions are listed first).
type FrontierExport struct {
	Count    int              `json:"count"`
	MinDepth int              `json:"min_depth"`
	MaxDepth int              `json:"max_depth"`
	Entries  []FrontierRecord `json:"entries"`
}

// FrontierRecord is one frontier position in its exported form.
type FrontierRecord struct {
	Key   string `json:"key"`
	Depth int    `json:"depth"`
}

// OutcomeOfBase64 decodes a base64 canonical key and returns the
// solver's recorded Outcome for it. ok is false if the position has
// not been solved yet. This is the thin adapter an external game
// server calls to ask "who wins from here" without touching the
// engine package's key type directly.
func OutcomeOfBase64(s *engine.Solver, base64Key string) (outcome engine.Outcome, ok bool, err error) {
	key, err := DecodeKey(base64Key)
	if err != nil {
		return 0, false, err
	}
	outcome, ok = s.OutcomeOf(key)
	return outcome, ok, nil
}

// BestMoves decodes a base64 canonical position and returns the JSON
// wire form of every legal move tied for best for the side to move,
// using only already-solved table entries (it never triggers a
// Solve). Returns an empty slice if the position is unsolved,
// terminal, or has no legal moves.
func BestMoves(s *engine.Solver, base64Key string) ([]json.RawMessage, error) {
	key, err := DecodeKey(base64Key)
	if err != nil {
		return nil, err
	}
	pos, err := engine.Decode(key)
	if err != nil {
		return nil, err
	}
	if _, won := engine.Terminal(pos); won {
		return nil, nil
	}
	if _, solved := s.OutcomeOf(engine.Canonicalize(key)); !solved {
		return nil, nil
	}

	outcomes := s.AllMoveOutcomes(pos)
	if len(outcomes) == 0 {
		return nil, nil
	}

	best, ok := bestOutcome(pos, outcomes)
	if !ok {
		return nil, nil
	}

	var out []json.RawMessage
	for m, o := range outcomes {
		if o != best {
			continue
		}
		wire, err := MarshalMove(m)
		if err != nil {
			return nil, err
		}
		out = append(out, wire)
	}
	return out, nil
}

// bestOutcome returns the outcome favoring pos.ToMove among outcomes:
// the maximum for P1, the minimum for P2.
func bestOutcome(pos *engine.Position, outcomes map[engine.Move]engine.Outcome) (engine.Outcome, bool) {
	found := false
	var best engine.Outcome
	for _, o := range outcomes {
		if !found {
			found, best = true, o
			continue
		}
		if pos.ToMove == engine.P1 {
			if o > best {
				best = o
			}
		} else if o < best {
			best = o
		}
	}
	return best, found
}

// MarshalFrontier builds the exported JSON document for entries.
func MarshalFrontier(entries []engine.FrontierEntry) ([]byte, error) {
	sorted := append([]engine.FrontierEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Depth > sorted[j].Depth })

	export := FrontierExport{Count: len(sorted)}
	if len(sorted) > 0 {
		export.MaxDepth = sorted[0].Depth
		export.MinDepth = sorted[len(sorted)-1].Depth
	}
	for _, e := range sorted {
		export.Entries = append(export.Entries, FrontierRecord{
			Key:   EncodeKey(e.Key),
			Depth: e.Depth,
		})
	}
	return json.MarshalIndent(export, "", "  ")
}
