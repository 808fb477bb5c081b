package bot

import "github.com/kmoroz/shakmat/internal/engine"

// Piece-square tables from the simplified evaluation function
// (https://www.chessprogramming.org/Simplified_Evaluation_Function).
// The white tables are laid out with square 0 = a8; Black uses the table
// reflected along the ranks. Pawns and kings have separate endgame tables.

var pstPawn = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pstPawnEnd = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	100, 100, 75, 75, 75, 75, 100, 100,
	75, 75, 50, 50, 50, 50, 75, 75,
	25, 25, 0, 0, 0, 0, 25, 25,
	30, 30, -25, -25, -25, -25, 30, 30,
	10, 10, -50, -50, -50, -50, 10, 10,
	-75, -75, -75, -75, -75, -75, -75, -75,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pstKnight = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var pstBishop = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var pstRook = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var pstQueen = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var pstKingMiddle = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var pstKingEnd = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// reversed returns the table reflected for the other color.
func reversed(t [64]int) [64]int {
	var r [64]int
	for i := 0; i < 64; i++ {
		r[i] = t[63-i]
	}
	return r
}

// pstMiddle[color][kind] and pstEnd[color][kind] are the phase tables.
var pstMiddle, pstEnd [2][6][64]int

func init() {
	white := [6][64]int{pstPawn, pstKnight, pstBishop, pstRook, pstQueen, pstKingMiddle}
	whiteEnd := [6][64]int{pstPawnEnd, pstKnight, pstBishop, pstRook, pstQueen, pstKingEnd}
	for kind := 0; kind < 6; kind++ {
		pstMiddle[engine.White][kind] = white[kind]
		pstMiddle[engine.Black][kind] = reversed(white[kind])
		pstEnd[engine.White][kind] = whiteEnd[kind]
		pstEnd[engine.Black][kind] = reversed(whiteEnd[kind])
	}
}

// pstTable returns the 64-entry table for a color, kind and phase.
func pstTable(color engine.Color, kind engine.PieceKind, endgame bool) *[64]int {
	if endgame {
		return &pstEnd[color][kind]
	}
	return &pstMiddle[color][kind]
}
