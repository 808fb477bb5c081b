package engine

import "github.com/kmoroz/shakmat/internal/movecache"

// ComputeHash builds the Zobrist hash of the current position from scratch:
// one key per piece on its square, the castling-rights key, the en-passant
// file key when a target exists, and the side-to-move key when Black is to
// move. Make maintains the same hash incrementally; the two must always
// agree.
func (e *MoveEngine) ComputeHash() uint64 {
	return HashBoard(e.cache, e.board)
}

// HashBoard computes the Zobrist hash of an arbitrary board.
func HashBoard(c *movecache.Cache, b *Board) uint64 {
	var hash uint64
	for color := 0; color < 2; color++ {
		for kind := 0; kind < 6; kind++ {
			for _, sq := range b.Locations[color][kind] {
				hash ^= c.PieceKey(color, kind, int(sq))
			}
		}
	}
	hash ^= c.CastlingKeys[b.Castling]
	if b.EPTarget != NoSquare {
		hash ^= c.EnPassantKey(int(b.EPTarget))
	}
	if b.Turn == Black {
		hash ^= c.TurnKey
	}
	return hash
}

// updateHash applies a move instruction to a hash incrementally, using the
// fact that XOR is its own inverse: out-keys for the captured piece, the
// mover on its origin, the old castling rights and old en-passant file;
// in-keys for the mover (or its promotion kind) on the destination, the new
// rights and new file; and the side-to-move key to flip the turn.
func updateHash(hash uint64, c *movecache.Cache, inst *MoveInstruction) uint64 {
	color := int(inst.Color)

	if !inst.Null {
		if inst.Capture {
			hash ^= c.PieceKey(int(inst.Color.Other()), int(inst.CaptureKind), int(inst.CaptureSq))
		} else if inst.IsCastle() {
			hash ^= c.PieceKey(color, int(Rook), int(inst.RookFrom))
			hash ^= c.PieceKey(color, int(Rook), int(inst.RookTo))
		}
		hash ^= c.PieceKey(color, int(inst.Piece), int(inst.From))
		hash ^= c.PieceKey(color, int(inst.PlacedKind), int(inst.To))
	}

	hash ^= c.CastlingKeys[inst.PrevCastling]
	hash ^= c.CastlingKeys[inst.NewCastling]

	if inst.PrevEPTarget != NoSquare {
		hash ^= c.EnPassantKey(int(inst.PrevEPTarget))
	}
	if inst.NewEPTarget != NoSquare {
		hash ^= c.EnPassantKey(int(inst.NewEPTarget))
	}

	hash ^= c.TurnKey

	return hash
}
