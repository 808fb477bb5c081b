package movecache

import "math/rand"

// zobristSeed is fixed so that two runs produce identical keys. Opening-book
// lookups and the hash tests depend on this reproducibility.
const zobristSeed = 0x7C33449743051711

// initZobrist fills the Zobrist key tables with deterministic pseudo-random
// values: one key per (color, piece kind, square), one per castling-rights
// state, one per en-passant file, and a single side-to-move key XORed in
// when Black is to move.
func (c *Cache) initZobrist() {
	rng := rand.New(rand.NewSource(zobristSeed))

	for color := 0; color < 2; color++ {
		for kind := 0; kind < 6; kind++ {
			for sq := 0; sq < 64; sq++ {
				c.PieceKeys[color][kind][sq] = rng.Uint64()
			}
		}
	}
	for rights := 0; rights < 16; rights++ {
		c.CastlingKeys[rights] = rng.Uint64()
	}
	for file := 0; file < 8; file++ {
		c.EnPassantKeys[file] = rng.Uint64()
	}
	c.TurnKey = rng.Uint64()
}

// PieceKey returns the key for a piece of the given color and kind on sq.
func (c *Cache) PieceKey(color, kind, sq int) uint64 {
	return c.PieceKeys[color][kind][sq]
}

// EnPassantKey returns the key for an en-passant target square. Only the
// file contributes to the hash.
func (c *Cache) EnPassantKey(sq int) uint64 {
	return c.EnPassantKeys[c.FileOf[sq]]
}
