package engine

import "github.com/kmoroz/shakmat/internal/movecache"

// Pin records a piece bound to a line by an enemy slider. The pinned piece
// may only move to squares whose line label of LineType equals LineIndex.
// EnPassantOnly marks the rank-pin special case where the piece moves
// freely except for the en-passant capture that would clear two pawns off
// the king's rank at once.
type Pin struct {
	Square        Square
	LineType      int
	LineIndex     int
	EnPassantOnly bool
}

// Pins computes the pin set for the side to move. Requires legal mode.
func (e *MoveEngine) Pins() []Pin {
	if !e.legalMode {
		panic(&LegalModeError{Msg: "pin computation requires legal mode", MoveStack: e.moves})
	}

	b := e.board
	c := e.cache
	us := b.Turn
	them := us.Other()
	king := e.KingSquare(us)

	var pins []Pin

	scanLine := func(lineType int, attacker Square) {
		lineIdx := c.LineOf[lineType][attacker]
		if lineIdx != c.LineOf[lineType][king] {
			return
		}
		between := c.Between[attacker][king]
		inner := b.Occupied & between
		if inner.PopCount() == 1 {
			pins = append(pins, Pin{
				Square:    Square(inner.ScanForward()),
				LineType:  lineType,
				LineIndex: lineIdx,
			})
			return
		}

		// En-passant rank pin: capturing en passant removes both the
		// capturing and the captured pawn from the rank, which can expose
		// the king. Rescan with the captured pawn lifted off; if exactly
		// the capturing pawn remains, that capture is illegal.
		if lineType != movecache.LineRank || b.EPTarget == NoSquare {
			return
		}
		if c.RankOf[int(b.EPTarget)] != lineIdx {
			return
		}
		without := b.Occupied
		without.Clear(int(b.EPTarget))
		inner = without & between
		if inner.PopCount() != 1 {
			return
		}
		candidate := Square(inner.ScanForward())
		if !b.Pieces[us][Pawn].IsSet(int(candidate)) {
			return
		}
		if candidate.Rank() != b.EPTarget.Rank() {
			return
		}
		if d := candidate.File() - b.EPTarget.File(); d != 1 && d != -1 {
			return
		}
		pins = append(pins, Pin{
			Square:        candidate,
			LineType:      movecache.LineRank,
			LineIndex:     lineIdx,
			EnPassantOnly: true,
		})
	}

	// Queens pin along every line, rooks along ranks and files, bishops
	// along the diagonals.
	for _, kind := range [2]PieceKind{Rook, Queen} {
		for _, attacker := range b.Locations[them][kind] {
			scanLine(movecache.LineRank, attacker)
			scanLine(movecache.LineFile, attacker)
		}
	}
	for _, kind := range [2]PieceKind{Bishop, Queen} {
		for _, attacker := range b.Locations[them][kind] {
			scanLine(movecache.LineDiag, attacker)
			scanLine(movecache.LineAntiDiag, attacker)
		}
	}

	return pins
}

// findPin returns the pin binding sq, if any.
func findPin(pins []Pin, sq Square) (Pin, bool) {
	for _, p := range pins {
		if p.Square == sq {
			return p, true
		}
	}
	return Pin{}, false
}
