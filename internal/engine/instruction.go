package engine

import "github.com/kmoroz/shakmat/internal/movecache"

// MoveInstruction is the full undo record built when a move is made. It
// embeds the Move and additionally carries the previous castling rights,
// en-passant target and halfmove clock verbatim, so restoring the board
// requires no recomputation.
type MoveInstruction struct {
	Move

	// PlacedKind is the kind standing on To after the move: the promotion
	// kind for promotions, the moving piece otherwise.
	PlacedKind PieceKind

	PrevCastling CastlingRights
	NewCastling  CastlingRights

	PrevEPTarget Square
	NewEPTarget  Square

	PrevHalfMove int
	NewHalfMove  int

	// Rook relocation for castles; NoSquare otherwise.
	RookFrom Square
	RookTo   Square
}

// buildInstruction derives the undo record for m in the current position:
// the resulting castling rights, en-passant target, halfmove clock, and the
// castle rook squares.
func buildInstruction(b *Board, c *movecache.Cache, m Move) MoveInstruction {
	inst := MoveInstruction{
		Move:         m,
		PlacedKind:   m.Piece,
		PrevCastling: b.Castling,
		NewCastling:  b.Castling,
		PrevEPTarget: b.EPTarget,
		NewEPTarget:  NoSquare,
		PrevHalfMove: b.HalfMove,
		RookFrom:     NoSquare,
		RookTo:       NoSquare,
	}

	if m.Null {
		inst.NewHalfMove = b.HalfMove + 1
		return inst
	}

	if m.Type.IsPromotion() {
		inst.PlacedKind = m.Type.PromotionKind()
	}

	switch m.Type {
	case MoveCastleWest:
		inst.RookFrom = Square(c.RookHome[m.Color][movecache.SideWest])
		inst.RookTo = m.From - 1
	case MoveCastleEast:
		inst.RookFrom = Square(c.RookHome[m.Color][movecache.SideEast])
		inst.RookTo = m.From + 1
	case MoveDoublePush:
		inst.NewEPTarget = m.To
	}

	// Castling rights decay when the king moves, when a rook leaves its
	// home square, or when a rook is captured on its home square.
	if m.Piece == King {
		inst.NewCastling = inst.NewCastling.WithoutColor(m.Color)
	}
	if m.Piece == Rook {
		for side := 0; side < 2; side++ {
			if m.From == Square(c.RookHome[m.Color][side]) {
				inst.NewCastling = inst.NewCastling.Without(m.Color, side)
			}
		}
	}
	if m.Capture && m.CaptureKind == Rook {
		enemy := m.Color.Other()
		for side := 0; side < 2; side++ {
			if m.CaptureSq == Square(c.RookHome[enemy][side]) {
				inst.NewCastling = inst.NewCastling.Without(enemy, side)
			}
		}
	}

	if m.Piece == Pawn || m.Capture {
		inst.NewHalfMove = 0
	} else {
		inst.NewHalfMove = b.HalfMove + 1
	}

	return inst
}
