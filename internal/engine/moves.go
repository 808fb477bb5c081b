package engine

import (
	"errors"
	"fmt"
)

// MoveType classifies a move. Normal covers plain moves and plain captures;
// the remaining variants carry extra make/unmake behavior.
type MoveType uint8

const (
	// MoveNormal is a plain move or capture.
	MoveNormal MoveType = iota
	// MoveCastleWest is queenside castling.
	MoveCastleWest
	// MoveCastleEast is kingside castling.
	MoveCastleEast
	// MoveEnPassant is an en-passant capture.
	MoveEnPassant
	// MoveDoublePush is a pawn's initial two-square advance. Making it
	// sets the en-passant target.
	MoveDoublePush
	// MovePromoteQueen .. MovePromoteKnight replace the pawn on arrival.
	MovePromoteQueen
	MovePromoteRook
	MovePromoteBishop
	MovePromoteKnight
)

// IsPromotion reports whether the move type is one of the four promotions.
func (t MoveType) IsPromotion() bool {
	return t >= MovePromoteQueen && t <= MovePromoteKnight
}

// IsCastle reports whether the move type is a castle to either side.
func (t MoveType) IsCastle() bool {
	return t == MoveCastleWest || t == MoveCastleEast
}

// PromotionKind returns the piece kind a promotion move produces.
func (t MoveType) PromotionKind() PieceKind {
	switch t {
	case MovePromoteQueen:
		return Queen
	case MovePromoteRook:
		return Rook
	case MovePromoteBishop:
		return Bishop
	case MovePromoteKnight:
		return Knight
	}
	panic(&InvariantError{Msg: "promotion kind of non-promotion move"})
}

// promotionTypes in generation order: queen, rook, bishop, knight.
var promotionTypes = [4]MoveType{MovePromoteQueen, MovePromoteRook, MovePromoteBishop, MovePromoteKnight}

// Move is a single chess move. CaptureSq differs from To only for
// en-passant captures, where the captured pawn does not sit on the
// destination square.
type Move struct {
	From  Square
	To    Square
	Piece PieceKind
	Color Color
	Type  MoveType

	Capture     bool
	CaptureKind PieceKind
	CaptureSq   Square

	// Null marks the null move used by null-move pruning: it only flips
	// the side to move.
	Null bool
}

// NullMove is the designated null move value.
var NullMove = Move{From: NoSquare, To: NoSquare, CaptureSq: NoSquare, Null: true}

// ID returns a stable identifier for ordering comparisons. Two moves in the
// same position are identical iff their IDs are equal.
func (m Move) ID() uint32 {
	if m.Null {
		return 1 << 31
	}
	return uint32(m.From)<<10 | uint32(m.To)<<4 | uint32(m.Type)
}

// IsCastle reports whether the move castles to either side.
func (m Move) IsCastle() bool {
	return m.Type.IsCastle()
}

// UCI returns the move in coordinate notation ("e2e4", "a7a8q"). The null
// move renders as "0000".
func (m Move) UCI() string {
	if m.Null {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Type.IsPromotion() {
		s += m.Type.PromotionKind().String()
	}
	return s
}

// String returns a human-readable description used by the REPL move lists.
func (m Move) String() string {
	if m.Null {
		return "null move"
	}
	desc := fmt.Sprintf("%s %s %s", m.Piece, m.From, m.To)
	if m.Capture {
		desc += fmt.Sprintf(" takes %s", m.CaptureKind)
	}
	switch {
	case m.Type == MoveCastleWest:
		desc += " (O-O-O)"
	case m.Type == MoveCastleEast:
		desc += " (O-O)"
	case m.Type == MoveEnPassant:
		desc += " (en passant)"
	case m.Type.IsPromotion():
		desc += fmt.Sprintf(" promotes to %s", m.Type.PromotionKind())
	}
	return desc
}

// MoveFromUCI reconstructs the Move a UCI string denotes in the given
// position. The board supplies the moving piece, capture information and
// the special move type. Legality is not checked.
func MoveFromUCI(b *Board, s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return Move{}, errors.New("invalid move format: expected 4-5 characters")
	}
	from, ok := ParseSquare(s[0:2])
	if !ok {
		return Move{}, fmt.Errorf("invalid from square: %s", s[0:2])
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return Move{}, fmt.Errorf("invalid to square: %s", s[2:4])
	}

	color, kind, occupied := b.PieceAt(from)
	if !occupied {
		return Move{}, fmt.Errorf("no piece on %s", from)
	}
	if color != b.Turn {
		return Move{}, fmt.Errorf("piece on %s belongs to %s", from, color.Name())
	}

	m := Move{From: from, To: to, Piece: kind, Color: color, Type: MoveNormal, CaptureSq: NoSquare}

	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Type = MovePromoteQueen
		case 'r':
			m.Type = MovePromoteRook
		case 'b':
			m.Type = MovePromoteBishop
		case 'n':
			m.Type = MovePromoteKnight
		default:
			return Move{}, fmt.Errorf("invalid promotion character: %c", s[4])
		}
	}

	fileDelta := to.File() - from.File()
	switch {
	case kind == King && fileDelta == -2:
		m.Type = MoveCastleWest
	case kind == King && fileDelta == 2:
		m.Type = MoveCastleEast
	case kind == Pawn && b.EPTarget != NoSquare && to == b.EPCaptureSquare() && fileDelta != 0:
		m.Type = MoveEnPassant
		m.Capture = true
		m.CaptureKind = Pawn
		m.CaptureSq = b.EPTarget
	case kind == Pawn && (to-from == 16 || from-to == 16):
		m.Type = MoveDoublePush
	}

	if m.Type != MoveEnPassant {
		if capColor, capKind, hit := b.PieceAt(to); hit {
			if capColor == color {
				return Move{}, fmt.Errorf("%s is occupied by a friendly piece", to)
			}
			m.Capture = true
			m.CaptureKind = capKind
			m.CaptureSq = to
		}
	}

	return m, nil
}
