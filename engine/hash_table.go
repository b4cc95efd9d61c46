// hash_table.go implements the transposition table: a fixed-size,
// power-of-two array indexed by two candidate slots per key. Every
// entry stored here is an exact, permanent game-theoretic outcome,
// never a depth-bounded alpha-beta bound, so there is no aging or
// replacement-by-depth policy: once a canonical key is solved its
// entry never changes again.
package engine

import "unsafe"

// Outcome is the game-theoretic value of a canonical position under
// optimal play by both sides.
type Outcome int8

const (
	OutcomeP2Wins Outcome = -1
	OutcomeDraw   Outcome = 0
	OutcomeP1Wins Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case OutcomeP1Wins:
		return "P1"
	case OutcomeP2Wins:
		return "P2"
	default:
		return "draw"
	}
}

// tableEntry is a value in the transposition table. key is stored in
// full (not just a lock bit pattern) since the canonical encoding is
// already collision-free across positions; storing it lets get verify
// an exact match rather than trusting a truncated lock.
type tableEntry struct {
	key     uint64
	outcome Outcome
	valid   bool
}

// Table is the solver's transposition table: canonical key -> Outcome.
// Not safe for concurrent use; the solver owns one per run.
type Table struct {
	slots []tableEntry
	mask  uint32
}

// NewTable builds a table sized to hold roughly capacity entries,
// rounded up to the next power of two.
func NewTable(capacity int) *Table {
	if capacity < 8 {
		capacity = 8
	}
	size := uint64(1)
	for size < uint64(capacity) {
		size <<= 1
	}
	return &Table{
		slots: make([]tableEntry, size),
		mask:  uint32(size - 1),
	}
}

// SizeBytes reports the table's backing array size, for reporting in
// Stats.
func (t *Table) SizeBytes() int {
	return len(t.slots) * int(unsafe.Sizeof(tableEntry{}))
}

// split derives two candidate slot indexes for key from its low and
// high halves, so a collision on one slot still leaves a second
// independent slot available before an entry has to be evicted.
func split(key uint64, mask uint32) (uint32, uint32) {
	lo := uint32(key)
	h0 := lo & mask
	h1 := h0 ^ uint32(key>>32)
	return h0, h1 & mask
}

// Put records the exact outcome of canonical key. If both candidate
// slots are occupied by different keys, the first slot is overwritten:
// entries are permanent facts, so an eviction only costs a future
// re-solve, never correctness.
func (t *Table) Put(key uint64, outcome Outcome) {
	h0, h1 := split(key, t.mask)
	if t.slots[h0].valid && t.slots[h0].key != key {
		if !t.slots[h1].valid || t.slots[h1].key == key {
			t.slots[h1] = tableEntry{key: key, outcome: outcome, valid: true}
			return
		}
	}
	t.slots[h0] = tableEntry{key: key, outcome: outcome, valid: true}
}

// Get returns the recorded outcome for key and true, or (0, false) if
// key has not been solved yet.
func (t *Table) Get(key uint64) (Outcome, bool) {
	h0, h1 := split(key, t.mask)
	if t.slots[h0].valid && t.slots[h0].key == key {
		return t.slots[h0].outcome, true
	}
	if t.slots[h1].valid && t.slots[h1].key == key {
		return t.slots[h1].outcome, true
	}
	return 0, false
}

// Range calls fn for every solved entry, in unspecified order. fn
// returning false stops the iteration early.
func (t *Table) Range(fn func(key uint64, outcome Outcome) bool) {
	for _, e := range t.slots {
		if e.valid {
			if !fn(e.key, e.outcome) {
				return
			}
		}
	}
}

// Len reports the number of solved entries currently stored.
func (t *Table) Len() int {
	n := 0
	for _, e := range t.slots {
		if e.valid {
			n++
		}
	}
	return n
}

// Clear removes every entry.
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i] = tableEntry{}
	}
}
