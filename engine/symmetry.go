// symmetry.go implements the D4 symmetry group acting on the 3x3
// board: four rotations times {identity, horizontal reflection}. The
// permutations of the nine cell fields are precomputed once at init
// time into lookup tables, so canonicalizing a position never redoes
// the index arithmetic per call.
package engine

// rotatePerm[old] is the cell index a piece at board cell `old` moves
// to under a 90-degree rotation: (r, c) -> (c, 2-r).
var rotatePerm [9]int

// reflectPerm[old] is the cell index a piece at board cell `old` moves
// to under a horizontal reflection: (r, c) -> (r, 2-c).
var reflectPerm [9]int

func init() {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			old := RankFile(r, c)
			rotatePerm[old] = RankFile(c, 2-r)
			reflectPerm[old] = RankFile(r, 2-c)
		}
	}
}

// permuteCells rebuilds the nine 6-bit cell fields of e according to
// perm, preserving the side-to-move bit untouched.
func permuteCells(e uint64, perm [9]int) uint64 {
	out := e & (1 << sideToMoveBit)
	for old := 0; old < 9; old++ {
		field := (e >> uint(old*6)) & 0x3F
		out |= field << uint(perm[old]*6)
	}
	return out
}

// Rotate90 permutes e by a 90-degree rotation of the board.
func Rotate90(e uint64) uint64 {
	return permuteCells(e, rotatePerm)
}

// ReflectH permutes e by a horizontal reflection of the board.
func ReflectH(e uint64) uint64 {
	return permuteCells(e, reflectPerm)
}

// AllSymmetries returns e and its seven other images under the D4
// group: four rotations, each with and without horizontal reflection.
func AllSymmetries(e uint64) [8]uint64 {
	var out [8]uint64
	cur := e
	for i := 0; i < 4; i++ {
		out[i] = cur
		out[i+4] = ReflectH(cur)
		cur = Rotate90(cur)
	}
	return out
}

// Canonicalize returns the numerically smallest encoding among e's
// eight D4 symmetries. Idempotent: canonicalizing an already-canonical
// key returns it unchanged, since it is by definition the minimum of
// its own symmetry orbit.
func Canonicalize(e uint64) uint64 {
	syms := AllSymmetries(e)
	min := syms[0]
	for _, s := range syms[1:] {
		if s < min {
			min = s
		}
	}
	return min
}
