package engine

import "github.com/kmoroz/shakmat/internal/bitutil"

// Board holds the complete position state: one bitboard and one square list
// per (color, kind), the derived occupancies, and the scalar game state.
// The square lists are redundant with the bitboards but allow cheap
// iteration without bitscans; Add and Remove keep every structure
// consistent.
type Board struct {
	// Pieces[color][kind] has a bit set for every occupied square.
	Pieces [2][6]bitutil.Bitboard

	// Locations[color][kind] is the unordered list of occupied squares.
	Locations [2][6][]Square

	// Occupied is the union of all piece bitboards; ByColor the per-color
	// unions.
	Occupied bitutil.Bitboard
	ByColor  [2]bitutil.Bitboard

	// Turn is the side to move.
	Turn Color

	// Castling holds the remaining castling rights.
	Castling CastlingRights

	// EPTarget is the square of the pawn that just double-pushed, or
	// NoSquare. Note this is the pawn's own square, not the FEN capture
	// square.
	EPTarget Square

	// HalfMove counts halfmoves since the last pawn move or capture.
	HalfMove int

	// FullMove is the full move number, starting at 1.
	FullMove int
}

// NewBoard returns an empty board with White to move and no castling
// rights.
func NewBoard() *Board {
	return &Board{EPTarget: NoSquare, FullMove: 1}
}

// Add places a piece of the given color and kind on sq, updating every
// redundant structure.
func (b *Board) Add(sq Square, color Color, kind PieceKind) {
	if !sq.IsValid() {
		panic(&InvariantError{Msg: "add on invalid square"})
	}
	b.Pieces[color][kind].Set(int(sq))
	b.Locations[color][kind] = append(b.Locations[color][kind], sq)
	b.Occupied.Set(int(sq))
	b.ByColor[color].Set(int(sq))
}

// Remove takes the piece of the given color and kind off sq.
func (b *Board) Remove(sq Square, color Color, kind PieceKind) {
	if !b.Pieces[color][kind].IsSet(int(sq)) {
		panic(&InvariantError{Msg: "remove of absent piece on " + sq.String()})
	}
	b.Pieces[color][kind].Clear(int(sq))
	locs := b.Locations[color][kind]
	for i, l := range locs {
		if l == sq {
			locs[i] = locs[len(locs)-1]
			b.Locations[color][kind] = locs[:len(locs)-1]
			break
		}
	}
	b.Occupied.Clear(int(sq))
	b.ByColor[color].Clear(int(sq))
}

// PieceAt returns the color and kind of the piece on sq, or ok=false for an
// empty square.
func (b *Board) PieceAt(sq Square) (Color, PieceKind, bool) {
	if !sq.IsValid() || !b.Occupied.IsSet(int(sq)) {
		return 0, 0, false
	}
	color := White
	if b.ByColor[Black].IsSet(int(sq)) {
		color = Black
	}
	for kind := Pawn; kind <= King; kind++ {
		if b.Pieces[color][kind].IsSet(int(sq)) {
			return color, kind, true
		}
	}
	panic(&InvariantError{Msg: "occupancy bit set without piece on " + sq.String()})
}

// Count returns the number of pieces of the given color and kind.
func (b *Board) Count(color Color, kind PieceKind) int {
	return len(b.Locations[color][kind])
}

// EPCaptureSquare converts the stored en-passant target (the pawn's own
// square) into the square a capturing pawn would land on, which is what FEN
// records. Returns NoSquare when there is no target.
func (b *Board) EPCaptureSquare() Square {
	if b.EPTarget == NoSquare {
		return NoSquare
	}
	if b.Turn == White {
		return b.EPTarget - 8
	}
	return b.EPTarget + 8
}

// Equal compares positions: piece placement, side to move, castling rights,
// en-passant target and both move counters. The square lists are unordered,
// so only the bitboards participate.
func (b *Board) Equal(o *Board) bool {
	if b.Turn != o.Turn || b.Castling != o.Castling || b.EPTarget != o.EPTarget ||
		b.HalfMove != o.HalfMove || b.FullMove != o.FullMove {
		return false
	}
	for color := 0; color < 2; color++ {
		for kind := 0; kind < 6; kind++ {
			if b.Pieces[color][kind] != o.Pieces[color][kind] {
				return false
			}
		}
	}
	return true
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	n := *b
	for color := 0; color < 2; color++ {
		for kind := 0; kind < 6; kind++ {
			n.Locations[color][kind] = append([]Square(nil), b.Locations[color][kind]...)
		}
	}
	return &n
}

// apply executes a move instruction: captures, castling rook relocation,
// and the mover itself, then the scalar state. The instruction's New*
// fields must have been derived from this position.
func (b *Board) apply(inst *MoveInstruction) {
	if !inst.Null {
		if inst.Capture {
			b.Remove(inst.CaptureSq, inst.Color.Other(), inst.CaptureKind)
		} else if inst.IsCastle() {
			b.Remove(inst.RookFrom, inst.Color, Rook)
			b.Add(inst.RookTo, inst.Color, Rook)
		}
		b.Remove(inst.From, inst.Color, inst.Piece)
		b.Add(inst.To, inst.Color, inst.PlacedKind)
	}

	b.Castling = inst.NewCastling
	b.EPTarget = inst.NewEPTarget
	b.HalfMove = inst.NewHalfMove
	if b.Turn == Black {
		b.FullMove++
	}
	b.Turn = b.Turn.Other()
}

// undo exactly reverses apply using the previous-state fields carried by
// the instruction. No recomputation is involved.
func (b *Board) undo(inst *MoveInstruction) {
	if !inst.Null {
		b.Remove(inst.To, inst.Color, inst.PlacedKind)
		b.Add(inst.From, inst.Color, inst.Piece)
		if inst.Capture {
			b.Add(inst.CaptureSq, inst.Color.Other(), inst.CaptureKind)
		} else if inst.IsCastle() {
			b.Remove(inst.RookTo, inst.Color, Rook)
			b.Add(inst.RookFrom, inst.Color, Rook)
		}
	}

	b.Castling = inst.PrevCastling
	b.EPTarget = inst.PrevEPTarget
	b.HalfMove = inst.PrevHalfMove
	if b.Turn == White {
		b.FullMove--
	}
	b.Turn = b.Turn.Other()
}
