package engine

import "github.com/kmoroz/shakmat/internal/movecache"

// Pseudo-legal move generation: every move that obeys piece movement rules,
// board geometry and "cannot capture your own piece", with no regard for
// king safety. The legality filter in the move engine rejects the rest.

var rookDirs = [4]int{movecache.DirN, movecache.DirS, movecache.DirE, movecache.DirW}
var bishopDirs = [4]int{movecache.DirNE, movecache.DirNW, movecache.DirSE, movecache.DirSW}
var queenDirs = [8]int{
	movecache.DirN, movecache.DirS, movecache.DirE, movecache.DirW,
	movecache.DirNE, movecache.DirNW, movecache.DirSE, movecache.DirSW,
}

// PseudoMoves generates all pseudo-legal moves for the side to move.
func PseudoMoves(b *Board, c *movecache.Cache) []Move {
	var moves []Move
	for kind := Pawn; kind <= King; kind++ {
		moves = appendKindMoves(moves, b, c, kind)
	}
	return moves
}

// PseudoMovesByKind generates pseudo-legal moves for one piece kind only.
func PseudoMovesByKind(b *Board, c *movecache.Cache, kind PieceKind) []Move {
	return appendKindMoves(nil, b, c, kind)
}

// PseudoMovesFrom generates pseudo-legal moves originating from one square.
func PseudoMovesFrom(b *Board, c *movecache.Cache, sq Square) []Move {
	color, kind, occupied := b.PieceAt(sq)
	if !occupied || color != b.Turn {
		return nil
	}
	return appendPieceMoves(nil, b, c, sq, kind)
}

func appendKindMoves(moves []Move, b *Board, c *movecache.Cache, kind PieceKind) []Move {
	for _, sq := range b.Locations[b.Turn][kind] {
		moves = appendPieceMoves(moves, b, c, sq, kind)
	}
	return moves
}

func appendPieceMoves(moves []Move, b *Board, c *movecache.Cache, sq Square, kind PieceKind) []Move {
	switch kind {
	case Pawn:
		return appendPawnMoves(moves, b, c, sq)
	case Knight:
		return appendStepMoves(moves, b, sq, Knight, c.KnightMoves[sq])
	case Bishop:
		return appendSlides(moves, b, c, sq, Bishop, bishopDirs[:])
	case Rook:
		return appendSlides(moves, b, c, sq, Rook, rookDirs[:])
	case Queen:
		return appendSlides(moves, b, c, sq, Queen, queenDirs[:])
	case King:
		moves = appendStepMoves(moves, b, sq, King, c.KingMoves[sq])
		return appendCastles(moves, b, c, sq)
	}
	return moves
}

// appendPawnMove expands promotions: any pawn move landing on the first or
// last rank becomes four moves, one per promotion kind.
func appendPawnMove(moves []Move, m Move) []Move {
	if r := m.To.Rank(); r == 0 || r == 7 {
		for _, t := range promotionTypes {
			p := m
			p.Type = t
			moves = append(moves, p)
		}
		return moves
	}
	return append(moves, m)
}

func appendPawnMoves(moves []Move, b *Board, c *movecache.Cache, sq Square) []Move {
	us := b.Turn

	pushes := c.PawnPushes[us][sq]
	if len(pushes) > 0 && !b.Occupied.IsSet(pushes[0]) {
		moves = appendPawnMove(moves, Move{
			From: sq, To: Square(pushes[0]), Piece: Pawn, Color: us,
			Type: MoveNormal, CaptureSq: NoSquare,
		})
		if len(pushes) > 1 && !b.Occupied.IsSet(pushes[1]) {
			moves = append(moves, Move{
				From: sq, To: Square(pushes[1]), Piece: Pawn, Color: us,
				Type: MoveDoublePush, CaptureSq: NoSquare,
			})
		}
	}

	epCapture := NoSquare
	if b.EPTarget != NoSquare {
		epCapture = b.EPCaptureSquare()
	}

	for _, t := range c.PawnAttacks[us][sq] {
		to := Square(t)
		switch {
		case b.ByColor[us.Other()].IsSet(t):
			_, kind, _ := b.PieceAt(to)
			moves = appendPawnMove(moves, Move{
				From: sq, To: to, Piece: Pawn, Color: us, Type: MoveNormal,
				Capture: true, CaptureKind: kind, CaptureSq: to,
			})
		case to == epCapture:
			moves = append(moves, Move{
				From: sq, To: to, Piece: Pawn, Color: us, Type: MoveEnPassant,
				Capture: true, CaptureKind: Pawn, CaptureSq: b.EPTarget,
			})
		}
	}

	return moves
}

func appendStepMoves(moves []Move, b *Board, sq Square, kind PieceKind, targets []int) []Move {
	us := b.Turn
	for _, t := range targets {
		if b.ByColor[us].IsSet(t) {
			continue
		}
		m := Move{From: sq, To: Square(t), Piece: kind, Color: us, Type: MoveNormal, CaptureSq: NoSquare}
		if b.ByColor[us.Other()].IsSet(t) {
			_, capKind, _ := b.PieceAt(Square(t))
			m.Capture = true
			m.CaptureKind = capKind
			m.CaptureSq = Square(t)
		}
		moves = append(moves, m)
	}
	return moves
}

// appendSlides walks each ray outward: every empty square is a move; the
// first blocker ends the ray, yielding a capture when it is an enemy piece.
func appendSlides(moves []Move, b *Board, c *movecache.Cache, sq Square, kind PieceKind, dirs []int) []Move {
	us := b.Turn
	for _, dir := range dirs {
		for _, t := range c.Rays[dir][sq] {
			if !b.Occupied.IsSet(t) {
				moves = append(moves, Move{
					From: sq, To: Square(t), Piece: kind, Color: us,
					Type: MoveNormal, CaptureSq: NoSquare,
				})
				continue
			}
			if b.ByColor[us.Other()].IsSet(t) {
				_, capKind, _ := b.PieceAt(Square(t))
				moves = append(moves, Move{
					From: sq, To: Square(t), Piece: kind, Color: us, Type: MoveNormal,
					Capture: true, CaptureKind: capKind, CaptureSq: Square(t),
				})
			}
			break
		}
	}
	return moves
}

// appendCastles emits castling moves when the rights bit is set, the
// clearance squares are empty, and king and rook stand on their home
// squares. Attack constraints are the legality filter's business.
func appendCastles(moves []Move, b *Board, c *movecache.Cache, sq Square) []Move {
	us := b.Turn
	if sq != kingHome[us] {
		return moves
	}
	castleTypes := [2]MoveType{movecache.SideWest: MoveCastleWest, movecache.SideEast: MoveCastleEast}
	for side, mt := range castleTypes {
		if !b.Castling.Has(us, side) {
			continue
		}
		if c.CastleClearance[us][side]&b.Occupied != 0 {
			continue
		}
		if !b.Pieces[us][Rook].IsSet(c.RookHome[us][side]) {
			continue
		}
		to := sq - 2
		if side == movecache.SideEast {
			to = sq + 2
		}
		moves = append(moves, Move{From: sq, To: to, Piece: King, Color: us, Type: mt, CaptureSq: NoSquare})
	}
	return moves
}
