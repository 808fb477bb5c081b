package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmoroz/shakmat/internal/movecache"
)

var testCache = movecache.New()

func newTestEngine(t *testing.T, fen string) *MoveEngine {
	t.Helper()
	b, err := FromFEN(fen)
	require.NoError(t, err)
	return New(b, testCache)
}

func makeUCIMoves(t *testing.T, me *MoveEngine, ucis ...string) {
	t.Helper()
	for _, uci := range ucis {
		m, err := MoveFromUCI(me.Board(), uci)
		require.NoError(t, err, uci)
		me.Make(m)
	}
}

func TestMakeUnmakeIdentity(t *testing.T) {
	me := newTestEngine(t, StartFEN)
	before := me.Board().Copy()
	beforeHash := me.CurrentHash()

	for _, m := range me.LegalMoves() {
		me.Make(m)
		me.Unmake()
		assert.True(t, me.Board().Equal(before), "unmake(make(%s)) changed the board", m.UCI())
		assert.Equal(t, beforeHash, me.CurrentHash(), "unmake(make(%s)) changed the hash", m.UCI())
	}
}

func TestMakeUpdatesState(t *testing.T) {
	me := newTestEngine(t, StartFEN)
	makeUCIMoves(t, me, "e2e4")

	b := me.Board()
	assert.Equal(t, Black, b.Turn)
	e4, _ := ParseSquare("e4")
	assert.Equal(t, e4, b.EPTarget, "double push must set the en passant target")
	assert.Equal(t, 0, b.HalfMove)
	assert.Equal(t, 1, b.FullMove)

	makeUCIMoves(t, me, "g8f6")
	assert.Equal(t, NoSquare, me.Board().EPTarget, "a non-double-push must clear the target")
	assert.Equal(t, 1, me.Board().HalfMove)
	assert.Equal(t, 2, me.Board().FullMove)
}

func TestCastlingRightsDecay(t *testing.T) {
	me := newTestEngine(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	// Moving the white king clears both white bits.
	makeUCIMoves(t, me, "e1d1")
	assert.False(t, me.Board().Castling.HasAny(White))
	assert.True(t, me.Board().Castling.HasAny(Black))
	me.Unmake()
	assert.Equal(t, CastlingRights(0b1111), me.Board().Castling)

	// Moving the a1 rook clears only the white queenside.
	makeUCIMoves(t, me, "a1a2")
	assert.False(t, me.Board().Castling.Has(White, 0))
	assert.True(t, me.Board().Castling.Has(White, 1))
	me.Unmake()

	// Capturing the h8 rook clears black's kingside.
	makeUCIMoves(t, me, "h1h8")
	assert.False(t, me.Board().Castling.Has(Black, 1))
	assert.True(t, me.Board().Castling.Has(Black, 0))
}

func TestCastleMoveRelocatesRook(t *testing.T) {
	me := newTestEngine(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	makeUCIMoves(t, me, "e1g1")

	b := me.Board()
	g1, _ := ParseSquare("g1")
	f1, _ := ParseSquare("f1")
	h1, _ := ParseSquare("h1")

	_, kind, occupied := b.PieceAt(g1)
	require.True(t, occupied)
	assert.Equal(t, King, kind)
	_, kind, occupied = b.PieceAt(f1)
	require.True(t, occupied)
	assert.Equal(t, Rook, kind)
	_, _, occupied = b.PieceAt(h1)
	assert.False(t, occupied)

	me.Unmake()
	_, kind, occupied = b.PieceAt(h1)
	require.True(t, occupied)
	assert.Equal(t, Rook, kind)
}

func TestEnPassantMakeUnmake(t *testing.T) {
	me := newTestEngine(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	before := me.Board().Copy()

	makeUCIMoves(t, me, "e5d6")
	d5, _ := ParseSquare("d5")
	d6, _ := ParseSquare("d6")
	_, _, occupied := me.Board().PieceAt(d5)
	assert.False(t, occupied, "captured pawn must leave d5")
	_, kind, occupied := me.Board().PieceAt(d6)
	require.True(t, occupied)
	assert.Equal(t, Pawn, kind)

	me.Unmake()
	assert.True(t, me.Board().Equal(before))
}

// The incrementally maintained hash must always equal the hash recomputed
// from scratch, across a long randomized game.
func TestIncrementalHashMatchesRecomputed(t *testing.T) {
	me := newTestEngine(t, StartFEN)
	rng := rand.New(rand.NewSource(7))

	for ply := 0; ply < 300; ply++ {
		moves := me.LegalMoves()
		if len(moves) == 0 {
			break
		}
		me.Make(moves[rng.Intn(len(moves))])
		require.Equal(t, me.ComputeHash(), me.CurrentHash(), "hash diverged at ply %d", ply)
	}
}

// Board invariants must hold after every make and every unmake of a
// randomized game, and fully unwinding must restore the initial position.
func TestRandomGameInvariants(t *testing.T) {
	me := newTestEngine(t, StartFEN)
	initial := me.Board().Copy()
	rng := rand.New(rand.NewSource(42))

	plies := 0
	for ; plies < 200; plies++ {
		moves := me.LegalMoves()
		if len(moves) == 0 {
			break
		}
		me.Make(moves[rng.Intn(len(moves))])
		assertConsistent(t, me.Board())
	}

	for i := 0; i < plies; i++ {
		me.Unmake()
		assertConsistent(t, me.Board())
	}
	assert.True(t, me.Board().Equal(initial))
	assert.Equal(t, HashBoard(testCache, initial), me.CurrentHash())
}

func TestCheckersDetection(t *testing.T) {
	// No checker in a quiet position.
	me := newTestEngine(t, "3RK3/8/8/8/8/8/8/5k2 b - - 0 1")
	assert.False(t, me.InCheck())

	// Rook check along a file.
	me = newTestEngine(t, "4k3/8/4R3/8/8/8/8/4K3 b - - 0 1")
	require.True(t, me.InCheck())
	checkers := me.Checkers()
	require.Len(t, checkers, 1)
	assert.Equal(t, Rook, checkers[0].Kind)

	// Double check: rook and bishop.
	me = newTestEngine(t, "4k3/8/4R3/1B6/8/8/8/4K3 b - - 0 1")
	assert.Len(t, me.Checkers(), 2)

	// Knight check.
	me = newTestEngine(t, "4k3/2N5/8/8/8/8/8/4K3 b - - 0 1")
	require.Len(t, me.Checkers(), 1)
	assert.Equal(t, Knight, me.Checkers()[0].Kind)

	// Pawn check.
	me = newTestEngine(t, "4k3/3P4/8/8/8/8/8/4K3 b - - 0 1")
	require.Len(t, me.Checkers(), 1)
	assert.Equal(t, Pawn, me.Checkers()[0].Kind)
}

func TestPinnedPawn(t *testing.T) {
	// The e4 pawn is pinned on the e-file by the rook on e6; it may still
	// push along the file but may never leave it.
	me := newTestEngine(t, "8/k7/4r3/3p4/4P3/8/8/4K3 w - - 0 1")

	pins := me.Pins()
	require.Len(t, pins, 1)
	e4, _ := ParseSquare("e4")
	assert.Equal(t, e4, pins[0].Square)
	assert.Equal(t, movecache.LineFile, pins[0].LineType)
	assert.False(t, pins[0].EnPassantOnly)

	moves := me.LegalMovesFrom(e4)
	require.Len(t, moves, 1, "the pinned pawn may only push, not capture d5")
	assert.Equal(t, "e4e5", moves[0].UCI())
}

func TestPinnedPieceKingMoves(t *testing.T) {
	// Spec scenario: rook e6 pins the e4 pawn. The pawn's only legal move
	// stays on the file, and the king keeps its usual squares since the
	// pawn blocks the rook's ray.
	me := newTestEngine(t, "8/k7/4r3/8/4P3/8/8/4K3 w - - 0 1")

	e4, _ := ParseSquare("e4")
	moves := me.LegalMovesFrom(e4)
	require.Len(t, moves, 1)
	assert.Equal(t, "e4e5", moves[0].UCI())

	e1, _ := ParseSquare("e1")
	kingMoves := me.LegalMovesFrom(e1)
	assert.Len(t, kingMoves, 5)
}

func TestEnPassantRankPin(t *testing.T) {
	// Both pawns sit between the rook and the king on the fifth rank:
	// capturing en passant would clear them both and expose the king, so
	// the capture is illegal even though the pawn is not otherwise
	// pinned. This is the classic Kiwipete en-passant bug.
	me := newTestEngine(t, "8/8/8/KPp4r/8/8/8/4k3 w - c6 0 2")

	pins := me.Pins()
	require.Len(t, pins, 1)
	b5, _ := ParseSquare("b5")
	assert.Equal(t, b5, pins[0].Square)
	assert.True(t, pins[0].EnPassantOnly)

	for _, m := range me.LegalMovesFrom(b5) {
		assert.NotEqual(t, MoveEnPassant, m.Type, "en passant must be rejected by the rank pin")
	}
	// The plain push is still available.
	assert.NotEmpty(t, me.LegalMovesFrom(b5))
}

func TestEnPassantLegalWhenNoRankPin(t *testing.T) {
	me := newTestEngine(t, "8/8/8/1Pp4r/8/8/8/K3k3 w - c6 0 2")
	b5, _ := ParseSquare("b5")

	var ep bool
	for _, m := range me.LegalMovesFrom(b5) {
		if m.Type == MoveEnPassant {
			ep = true
		}
	}
	assert.True(t, ep, "en passant is legal when the king is off the rank")
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	me := newTestEngine(t, "4k3/8/4R3/1B6/8/8/8/4K3 b - - 0 1")
	require.Len(t, me.Checkers(), 2)

	for _, m := range me.LegalMoves() {
		assert.Equal(t, King, m.Piece, "only king moves escape double check")
	}
	assert.NotEmpty(t, me.LegalMoves())
}

func TestCheckEvasions(t *testing.T) {
	// Rook e6 checks the king on e1; legal responses are king moves off
	// the file, capturing the rook, or interposing.
	me := newTestEngine(t, "4k3/8/4r3/8/8/8/3Q4/4K3 w - - 0 1")
	require.True(t, me.InCheck())

	moves := me.LegalMoves()
	var interpose, kingMove bool
	for _, m := range moves {
		switch {
		case m.Piece == King:
			kingMove = true
			assert.NotEqual(t, 4, m.To.File(), "the king may not stay on the attacked file")
		case m.Piece == Queen:
			interpose = true
			assert.Equal(t, 4, m.To.File(), "a non-king response must block on the e-file")
		}
	}
	assert.True(t, interpose)
	assert.True(t, kingMove)
}

func TestNoCastlingOutOfCheck(t *testing.T) {
	me := newTestEngine(t, "4r2k/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.True(t, me.InCheck())
	for _, m := range me.LegalMoves() {
		assert.False(t, m.IsCastle())
	}
}

func TestNoCastlingThroughAttack(t *testing.T) {
	// Black rook on f8 attacks f1, the square the king passes through.
	me := newTestEngine(t, "5r1k/8/8/8/8/8/8/4K2R w K - 0 1")
	for _, m := range me.LegalMoves() {
		assert.NotEqual(t, MoveCastleEast, m.Type)
	}

	// With the rook elsewhere the castle is legal.
	me = newTestEngine(t, "r6k/8/8/8/8/8/8/4K2R w K - 0 1")
	var castled bool
	for _, m := range me.LegalMoves() {
		if m.Type == MoveCastleEast {
			castled = true
		}
	}
	assert.True(t, castled)
}

func TestNullMoveMakeUnmake(t *testing.T) {
	me := newTestEngine(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	before := me.Board().Copy()
	beforeHash := me.CurrentHash()

	me.AllowNull = true
	me.Make(NullMove)

	assert.Equal(t, Black, me.Board().Turn)
	assert.Equal(t, NoSquare, me.Board().EPTarget, "a null move clears the en passant target")
	assert.NotEqual(t, beforeHash, me.CurrentHash())

	me.Unmake()
	assert.True(t, me.Board().Equal(before))
	assert.Equal(t, beforeHash, me.CurrentHash())
}

func TestNullMoveRequiresPermission(t *testing.T) {
	me := newTestEngine(t, StartFEN)
	assert.Panics(t, func() { me.Make(NullMove) })
}

func TestNullMoveForbiddenInCheck(t *testing.T) {
	me := newTestEngine(t, "4k3/8/4R3/8/8/8/8/4K3 b - - 0 1")
	me.AllowNull = true
	assert.Panics(t, func() { me.Make(NullMove) })
}

func TestLoopMovesOrderAndStop(t *testing.T) {
	me := newTestEngine(t, StartFEN)

	var seen []string
	err := me.LoopMoves(func(m Move) (bool, error) {
		seen = append(seen, m.UCI())
		return len(seen) < 3, nil
	}, func(m Move) int {
		// Deterministic order: highest destination square first.
		return int(m.To)
	}, nil)
	require.NoError(t, err)
	assert.Len(t, seen, 3, "iteration must stop when eval returns false")
	// Ties on h3 keep generation order: pawns before knights.
	assert.Equal(t, []string{"h2h3", "g1h3", "g2g3"}, seen)

	// The board is unchanged after the loop.
	assert.Equal(t, StartFEN, me.Board().FEN())
}
