package bot

import (
	"github.com/kmoroz/shakmat/internal/engine"
	"github.com/kmoroz/shakmat/internal/movecache"
)

// Piece weights in centipawns
// (https://www.chessprogramming.org/Simplified_Evaluation_Function).
const (
	pawnValue   = 100
	knightValue = 320
	bishopValue = 330
	rookValue   = 500
	queenValue  = 900
	kingValue   = 10000

	// CheckmateWeight is the base score of a mate; the search adds
	// 1000 per remaining depth so shorter mates score higher.
	CheckmateWeight = 100000
)

var pieceWeights = [6]int{pawnValue, knightValue, bishopValue, rookValue, queenValue, 0}

// pieceValue returns the base weight of a kind, with the king counted at
// its nominal 10000 for capture-ordering purposes.
func pieceValue(kind engine.PieceKind) int {
	if kind == engine.King {
		return kingValue
	}
	return pieceWeights[kind]
}

// IsEndgame reports the endgame phase: both sides have either no queen and
// fewer than three minor or rook pieces, or a queen and no other minor or
// rook piece.
func IsEndgame(me *engine.MoveEngine) bool {
	b := me.Board()
	for color := engine.White; color <= engine.Black; color++ {
		lesser := b.Count(color, engine.Knight) + b.Count(color, engine.Bishop) + b.Count(color, engine.Rook)
		queens := b.Count(color, engine.Queen)
		if !(queens == 0 && lesser < 3 || queens > 0 && lesser < 1) {
			return false
		}
	}
	return true
}

// Evaluate statically scores the position from the side to move's
// perspective: positive means the side to move is better. firstQuiet marks
// the first quiescence node, where a mated side scores the full checkmate
// weight instead of material.
func Evaluate(me *engine.MoveEngine, endgame, firstQuiet bool) int {
	if firstQuiet && me.InCheckmate() {
		return -CheckmateWeight
	}

	eval := material(me) + pstScore(me, endgame) + kingSafety(me, endgame)

	if me.Turn() == engine.Black {
		return -eval
	}
	return eval
}

// material sums the adjusted piece weights for both sides (White positive)
// and amplifies the total in the winning side's favor: with 10000 added to
// each side's sum, the max/min ratio rewards the stronger side more as the
// opponent thins out.
func material(me *engine.MoveEngine) int {
	b := me.Board()
	c := me.Cache()

	var sums [2]int
	for color := engine.White; color <= engine.Black; color++ {
		enemy := color.Other()
		enemyPawns := b.Count(enemy, engine.Pawn)
		missing := 8 - enemyPawns
		if missing < 0 {
			missing = 0
		}

		sum := b.Count(color, engine.Pawn) * pawnValue
		// Knights lose value as enemy pawns leave the board.
		sum += b.Count(color, engine.Knight) * (knightValue - 5*missing)
		sum += b.Count(color, engine.Rook) * rookValue
		sum += b.Count(color, engine.Queen) * queenValue

		// Bishops dislike enemy pawns crowding their square color and gain
		// as enemy pawns disappear.
		enemyPawnBB := b.Pieces[enemy][engine.Pawn]
		for _, sq := range b.Locations[color][engine.Bishop] {
			colorMask := c.LightSquares
			if c.DarkSquares.IsSet(int(sq)) {
				colorMask = c.DarkSquares
			}
			crowding := (enemyPawnBB & colorMask).PopCount()
			sum += bishopValue - 5*crowding + 6*missing
		}

		sums[color] = sum
	}

	wTotal := float64(sums[engine.White] + kingValue)
	bTotal := float64(sums[engine.Black] + kingValue)
	ratio := wTotal / bTotal
	if ratio < 1 {
		ratio = 1 / ratio
	}

	return int(float64(sums[engine.White]-sums[engine.Black]) * ratio)
}

// pstScore sums the piece-square bonuses for both sides (White positive).
func pstScore(me *engine.MoveEngine, endgame bool) int {
	b := me.Board()
	eval := 0
	for color := engine.White; color <= engine.Black; color++ {
		dir := 1
		if color == engine.Black {
			dir = -1
		}
		for kind := engine.Pawn; kind <= engine.King; kind++ {
			tbl := pstTable(color, kind, endgame)
			for _, sq := range b.Locations[color][kind] {
				eval += dir * tbl[sq]
			}
		}
	}
	return eval
}

// kingSafety scores the kings (White positive). In both phases enemy rooks
// or queens on the king's rank or the rank behind it cost a fixed amount
// each. In the middlegame a king without a pawn shield is additionally
// penalized in proportion to the enemy slider count; in the endgame the
// king is instead rewarded for staying near pawns.
func kingSafety(me *engine.MoveEngine, endgame bool) int {
	b := me.Board()
	c := me.Cache()

	eval := 0
	for color := engine.White; color <= engine.Black; color++ {
		dir := 1
		if color == engine.Black {
			dir = -1
		}
		enemy := color.Other()
		king := me.KingSquare(color)
		kingRank := king.Rank()

		for _, kind := range [2]engine.PieceKind{engine.Rook, engine.Queen} {
			for _, sq := range b.Locations[enemy][kind] {
				r := sq.Rank()
				if color == engine.White && (r == kingRank || r == kingRank+1) ||
					color == engine.Black && (r == kingRank || r == kingRank-1) {
					eval -= dir * 10
				}
			}
		}

		if !endgame {
			sliders := b.Count(enemy, engine.Rook) + b.Count(enemy, engine.Bishop) + b.Count(enemy, engine.Queen)
			shield := c.PawnAttackMasks[color][king]
			front := c.Rays[movecache.DirN][king]
			if color == engine.Black {
				front = c.Rays[movecache.DirS][king]
			}
			for i, sq := range front {
				if i == 2 {
					break
				}
				shield.Set(sq)
			}
			if shield&b.Pieces[color][engine.Pawn] == 0 && sliders > 1 {
				eval -= dir * 5 * (sliders - 1)
			}
		} else {
			for pawnColor := engine.White; pawnColor <= engine.Black; pawnColor++ {
				for _, sq := range b.Locations[pawnColor][engine.Pawn] {
					dist := chebyshev(king, sq)
					eval += dir * ((8 - dist + 3) / 4)
				}
			}
		}
	}
	return eval
}

// chebyshev returns the king-walk distance between two squares.
func chebyshev(a, b engine.Square) int {
	df := a.File() - b.File()
	if df < 0 {
		df = -df
	}
	dr := a.Rank() - b.Rank()
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}
