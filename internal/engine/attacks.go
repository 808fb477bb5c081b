package engine

import (
	"github.com/kmoroz/shakmat/internal/bitutil"
	"github.com/kmoroz/shakmat/internal/movecache"
)

// Checker identifies a piece giving check: its square and kind.
type Checker struct {
	Square Square
	Kind   PieceKind
}

// dirDecreasing marks ray directions that run toward lower square indices.
// Scanning for the nearest blocker along such a ray wants the highest set
// bit of the masked occupancy; the other rays want the lowest.
var dirDecreasing = [8]bool{
	movecache.DirN:  true,
	movecache.DirW:  true,
	movecache.DirNE: true,
	movecache.DirNW: true,
}

// nearestOnRay returns the first occupied square along the ray from sq in
// the given direction, or NoSquare when the ray is empty.
func nearestOnRay(c *movecache.Cache, occ bitutil.Bitboard, dir int, sq Square) Square {
	masked := occ & c.RayMasks[dir][sq]
	if masked == 0 {
		return NoSquare
	}
	if dirDecreasing[dir] {
		return Square(masked.ScanReverse())
	}
	return Square(masked.ScanForward())
}

// SquareAttacked reports whether sq is attacked by any piece of the given
// color. With removeKing set, the side to move's king is lifted off the
// occupancy first so that a fleeing king does not shadow the ray behind it;
// this requires legal mode.
func (e *MoveEngine) SquareAttacked(by Color, sq Square, removeKing bool) bool {
	b := e.board
	c := e.cache

	if c.KnightMasks[sq]&b.Pieces[by][Knight] != 0 {
		return true
	}
	// A pawn of color `by` attacks sq iff a pawn of the other color placed
	// on sq would attack the pawn's square.
	if c.PawnAttackMasks[by.Other()][sq]&b.Pieces[by][Pawn] != 0 {
		return true
	}
	if c.KingMasks[sq]&b.Pieces[by][King] != 0 {
		return true
	}
	return e.sliderAttacks(by, sq, e.scanOccupancy(removeKing), nil)
}

// AttackersOf collects every piece of the given color attacking sq.
func (e *MoveEngine) AttackersOf(by Color, sq Square, removeKing bool) []Checker {
	b := e.board
	c := e.cache

	var attackers []Checker
	collect := func(mask bitutil.Bitboard, kind PieceKind) {
		for mask != 0 {
			attackers = append(attackers, Checker{Square: Square(mask.PopLSB()), Kind: kind})
		}
	}
	collect(c.KnightMasks[sq]&b.Pieces[by][Knight], Knight)
	collect(c.PawnAttackMasks[by.Other()][sq]&b.Pieces[by][Pawn], Pawn)
	collect(c.KingMasks[sq]&b.Pieces[by][King], King)
	e.sliderAttacks(by, sq, e.scanOccupancy(removeKing), &attackers)
	return attackers
}

// scanOccupancy returns the occupancy for ray scans, optionally with the
// side to move's king removed.
func (e *MoveEngine) scanOccupancy(removeKing bool) bitutil.Bitboard {
	occ := e.board.Occupied
	if removeKing {
		if !e.legalMode {
			panic(&LegalModeError{Msg: "king removal requires legal mode", MoveStack: e.moves})
		}
		occ.Clear(int(e.KingSquare(e.board.Turn)))
	}
	return occ
}

// sliderAttacks ray-scans from sq in all eight directions against occ. When
// out is nil it reports the first hit; otherwise it appends every slider
// attacker to *out and returns whether any was found.
func (e *MoveEngine) sliderAttacks(by Color, sq Square, occ bitutil.Bitboard, out *[]Checker) bool {
	b := e.board
	c := e.cache
	found := false

	check := func(dir int, kinds [2]PieceKind) bool {
		hit := nearestOnRay(c, occ, dir, sq)
		if hit == NoSquare {
			return false
		}
		for _, kind := range kinds {
			if b.Pieces[by][kind].IsSet(int(hit)) {
				if out == nil {
					return true
				}
				*out = append(*out, Checker{Square: hit, Kind: kind})
				found = true
				return false
			}
		}
		return false
	}

	ortho := [2]PieceKind{Rook, Queen}
	diag := [2]PieceKind{Bishop, Queen}
	for _, dir := range rookDirs {
		if check(dir, ortho) {
			return true
		}
	}
	for _, dir := range bishopDirs {
		if check(dir, diag) {
			return true
		}
	}
	return found
}
