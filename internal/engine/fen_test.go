package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFENStartingPosition(t *testing.T) {
	b, err := FromFEN(StartFEN)
	require.NoError(t, err)

	assert.Equal(t, White, b.Turn)
	assert.Equal(t, CastlingRights(0b1111), b.Castling)
	assert.Equal(t, NoSquare, b.EPTarget)
	assert.Equal(t, 0, b.HalfMove)
	assert.Equal(t, 1, b.FullMove)

	assert.Equal(t, 8, b.Count(White, Pawn))
	assert.Equal(t, 8, b.Count(Black, Pawn))
	assert.Equal(t, 2, b.Count(White, Rook))
	assert.Equal(t, 1, b.Count(Black, King))
	assert.Equal(t, 32, b.Occupied.PopCount())

	// Spot checks: a8 is the black queenside rook, e1 the white king.
	color, kind, occupied := b.PieceAt(0)
	require.True(t, occupied)
	assert.Equal(t, Black, color)
	assert.Equal(t, Rook, kind)

	color, kind, occupied = b.PieceAt(60)
	require.True(t, occupied)
	assert.Equal(t, White, color)
	assert.Equal(t, King, kind)
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/k7/4r3/8/4P3/8/8/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 42 99",
	}
	for _, fen := range fens {
		b, err := FromFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, b.FEN())
	}
}

func TestFENEnPassantConversion(t *testing.T) {
	// White to move with en passant on e6 means a black pawn just landed
	// on e5; the board stores the pawn's own square.
	b, err := FromFEN("rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR w KQkq e6 0 2")
	require.NoError(t, err)
	e5, _ := ParseSquare("e5")
	e6, _ := ParseSquare("e6")
	assert.Equal(t, e5, b.EPTarget)
	assert.Equal(t, e6, b.EPCaptureSquare())

	// Black to move with en passant on c3: white pawn on c4.
	b, err = FromFEN("rnbqkbnr/pppppppp/8/8/2P5/8/PP1PPPPP/RNBQKBNR b KQkq c3 0 1")
	require.NoError(t, err)
	c4, _ := ParseSquare("c4")
	c3, _ := ParseSquare("c3")
	assert.Equal(t, c4, b.EPTarget)
	assert.Equal(t, c3, b.EPCaptureSquare())
}

func TestFromFENOptionalCounters(t *testing.T) {
	b, err := FromFEN("4k3/8/8/8/8/8/8/4K3 w - -")
	require.NoError(t, err)
	assert.Equal(t, 0, b.HalfMove)
	assert.Equal(t, 1, b.FullMove)
}

func TestFromFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",      // 7 ranks
		"rnbqkbnr/pppppppp/9/8/8/8/8/PPPPPPPP w KQkq - 0 1",    // bad digit
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQXBNR w - - 0 1", // bad piece
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad color
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -3 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",
	}
	for _, fen := range bad {
		_, err := FromFEN(fen)
		assert.Error(t, err, "FEN %q should fail", fen)
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		str  string
		want Square
	}{
		{"a8", 0},
		{"h8", 7},
		{"a1", 56},
		{"h1", 63},
		{"e4", 36},
	}
	for _, tt := range tests {
		sq, ok := ParseSquare(tt.str)
		require.True(t, ok, tt.str)
		assert.Equal(t, tt.want, sq)
		assert.Equal(t, tt.str, sq.String())
	}

	for _, bad := range []string{"", "e", "i4", "a9", "e44"} {
		_, ok := ParseSquare(bad)
		assert.False(t, ok, bad)
	}
}
