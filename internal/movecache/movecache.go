// Package movecache provides the precomputed, immutable move tables the
// engine is driven by: per-square step targets for pawns, knights and kings,
// per-direction ray targets for sliders, bitmask forms of all of the above,
// rank/file/diagonal labels and masks, castle clearance masks, and the
// Zobrist key tables.
//
// A Cache is built once at startup and never written afterwards, so a single
// instance may be shared freely.
//
// Squares are indexed 0..63 with 0 = a8 (top-left from White's view) and
// 63 = h1. White moves toward lower indices.
package movecache

import "github.com/kmoroz/shakmat/internal/bitutil"

// Slider directions. The order matches the ray tables.
const (
	DirN = iota
	DirS
	DirE
	DirW
	DirNE
	DirNW
	DirSE
	DirSW
	dirCount
)

// Line label types used for pins: a pinned piece is bound to one line of one
// of these four kinds.
const (
	LineRank = iota
	LineFile
	LineDiag
	LineAntiDiag
	lineCount
)

// Board sides for castling. West is the queenside.
const (
	SideWest = 0
	SideEast = 1
)

// dirDelta maps a direction to its (file, rank-from-top) step.
var dirDelta = [dirCount][2]int{
	DirN:  {0, -1},
	DirS:  {0, 1},
	DirE:  {1, 0},
	DirW:  {-1, 0},
	DirNE: {1, -1},
	DirNW: {-1, -1},
	DirSE: {1, 1},
	DirSW: {-1, 1},
}

// Cache holds every precomputed table. All fields are read-only after New.
type Cache struct {
	// Step target lists, ordered but otherwise unordered sets of squares.
	PawnPushes  [2][64][]int // forward pushes, including the double push
	PawnAttacks [2][64][]int // diagonal forward captures
	KnightMoves [64][]int
	KingMoves   [64][]int
	Rays        [dirCount][64][]int // ordered from the origin outward

	// Bitmask forms of the step targets.
	PawnPushMasks   [2][64]bitutil.Bitboard
	PawnAttackMasks [2][64]bitutil.Bitboard
	KnightMasks     [64]bitutil.Bitboard
	KingMasks       [64]bitutil.Bitboard
	RayMasks        [dirCount][64]bitutil.Bitboard

	// Between[a][b] holds the squares strictly between a and b when the two
	// share a rank, file, diagonal or anti-diagonal, and is empty otherwise.
	Between [64][64]bitutil.Bitboard

	// Line labels per square. LineOf[LineRank] is the rank index 0..7,
	// LineOf[LineDiag] the SW-to-NE diagonal index 0..14, and so on.
	RankOf     [64]int
	FileOf     [64]int
	DiagOf     [64]int
	AntiDiagOf [64]int
	LineOf     [lineCount][64]int

	// Masks of whole lines, indexed by the labels above.
	RankMasks     [8]bitutil.Bitboard
	FileMasks     [8]bitutil.Bitboard
	DiagMasks     [15]bitutil.Bitboard
	AntiDiagMasks [15]bitutil.Bitboard
	LineMasks     [lineCount][]bitutil.Bitboard

	// Castling geometry: squares that must be empty between king and rook,
	// and the rooks' home squares, per [color][side].
	CastleClearance [2][2]bitutil.Bitboard
	RookHome        [2][2]int

	LightSquares bitutil.Bitboard
	DarkSquares  bitutil.Bitboard

	// Zobrist key tables, generated from a fixed seed (see zobrist.go).
	PieceKeys     [2][6][64]uint64
	CastlingKeys  [16]uint64
	EnPassantKeys [8]uint64
	TurnKey       uint64
}

// New builds the full cache. Colors follow the engine convention:
// 0 = White, 1 = Black.
func New() *Cache {
	c := &Cache{}
	c.initLines()
	c.initStepTables()
	c.initRays()
	c.initBetween()
	c.initCastling()
	c.initSquareColors()
	c.initZobrist()
	return c
}

// shift moves a square one step in the given (file, rank) direction and
// reports whether the result stays on the board.
func shift(sq, df, dr int) (int, bool) {
	f := sq%8 + df
	r := sq/8 + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return 0, false
	}
	return r*8 + f, true
}

func (c *Cache) initLines() {
	for sq := 0; sq < 64; sq++ {
		f, r := sq%8, sq/8
		c.FileOf[sq] = f
		c.RankOf[sq] = r
		c.DiagOf[sq] = f + r
		c.AntiDiagOf[sq] = (7 - f) + r

		c.RankMasks[r].Set(sq)
		c.FileMasks[f].Set(sq)
		c.DiagMasks[f+r].Set(sq)
		c.AntiDiagMasks[(7-f)+r].Set(sq)
	}
	c.LineOf = [lineCount][64]int{c.RankOf, c.FileOf, c.DiagOf, c.AntiDiagOf}
	c.LineMasks = [lineCount][]bitutil.Bitboard{
		c.RankMasks[:], c.FileMasks[:], c.DiagMasks[:], c.AntiDiagMasks[:],
	}
}

func (c *Cache) initStepTables() {
	knightSteps := [8][2]int{
		{-2, -1}, {-2, 1}, {2, -1}, {2, 1},
		{-1, -2}, {-1, 2}, {1, -2}, {1, 2},
	}
	kingSteps := [8][2]int{
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	}

	for sq := 0; sq < 64; sq++ {
		for _, s := range knightSteps {
			if to, ok := shift(sq, s[0], s[1]); ok {
				c.KnightMoves[sq] = append(c.KnightMoves[sq], to)
				c.KnightMasks[sq].Set(to)
			}
		}
		for _, s := range kingSteps {
			if to, ok := shift(sq, s[0], s[1]); ok {
				c.KingMoves[sq] = append(c.KingMoves[sq], to)
				c.KingMasks[sq].Set(to)
			}
		}

		for color := 0; color < 2; color++ {
			// White pushes north (toward lower indices), Black south.
			dr := -1
			startRank := 6
			if color == 1 {
				dr = 1
				startRank = 1
			}
			r := sq / 8
			if r != 0 && r != 7 {
				if to, ok := shift(sq, 0, dr); ok {
					c.PawnPushes[color][sq] = append(c.PawnPushes[color][sq], to)
					c.PawnPushMasks[color][sq].Set(to)
				}
				if r == startRank {
					if to, ok := shift(sq, 0, 2*dr); ok {
						c.PawnPushes[color][sq] = append(c.PawnPushes[color][sq], to)
						c.PawnPushMasks[color][sq].Set(to)
					}
				}
			}
			for _, df := range [2]int{-1, 1} {
				if to, ok := shift(sq, df, dr); ok {
					c.PawnAttacks[color][sq] = append(c.PawnAttacks[color][sq], to)
					c.PawnAttackMasks[color][sq].Set(to)
				}
			}
		}
	}
}

func (c *Cache) initRays() {
	for dir := 0; dir < dirCount; dir++ {
		df, dr := dirDelta[dir][0], dirDelta[dir][1]
		for sq := 0; sq < 64; sq++ {
			cur := sq
			for {
				to, ok := shift(cur, df, dr)
				if !ok {
					break
				}
				c.Rays[dir][sq] = append(c.Rays[dir][sq], to)
				c.RayMasks[dir][sq].Set(to)
				cur = to
			}
		}
	}
}

func (c *Cache) initBetween() {
	// Two aligned squares see each other along exactly one direction; the
	// squares strictly between them are the intersection of the two facing
	// rays.
	opposite := [dirCount]int{
		DirN: DirS, DirS: DirN, DirE: DirW, DirW: DirE,
		DirNE: DirSW, DirNW: DirSE, DirSE: DirNW, DirSW: DirNE,
	}
	for from := 0; from < 64; from++ {
		for dir := 0; dir < dirCount; dir++ {
			for _, to := range c.Rays[dir][from] {
				c.Between[from][to] = c.RayMasks[dir][from] & c.RayMasks[opposite[dir]][to]
			}
		}
	}
}

func (c *Cache) initCastling() {
	// Black's clearance squares sit on the top rank; White's are the same
	// pattern shifted to the bottom rank.
	var blackWest, blackEast bitutil.Bitboard
	blackWest.Set(1)
	blackWest.Set(2)
	blackWest.Set(3)
	blackEast.Set(5)
	blackEast.Set(6)

	c.CastleClearance[1][SideWest] = blackWest
	c.CastleClearance[1][SideEast] = blackEast
	c.CastleClearance[0][SideWest] = blackWest << 56
	c.CastleClearance[0][SideEast] = blackEast << 56

	c.RookHome[0] = [2]int{56, 63}
	c.RookHome[1] = [2]int{0, 7}
}

func (c *Cache) initSquareColors() {
	for sq := 0; sq < 64; sq++ {
		if (sq%8+sq/8)%2 == 0 {
			c.LightSquares.Set(sq)
		} else {
			c.DarkSquares.Set(sq)
		}
	}
}
