package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmoroz/shakmat/internal/engine"
	"github.com/kmoroz/shakmat/internal/movecache"
)

var testCache = movecache.New()

func newTestEngine(t *testing.T, fen string) *engine.MoveEngine {
	t.Helper()
	b, err := engine.FromFEN(fen)
	require.NoError(t, err)
	return engine.New(b, testCache)
}

func TestIsEndgame(t *testing.T) {
	// The starting position is a middlegame.
	assert.False(t, IsEndgame(newTestEngine(t, engine.StartFEN)))

	// Queen and nothing else on both sides: endgame.
	assert.True(t, IsEndgame(newTestEngine(t, "3qk3/8/8/8/8/8/8/3QK3 w - - 0 1")))

	// Bare kings: endgame.
	assert.True(t, IsEndgame(newTestEngine(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")))

	// Two rooks and no queen on each side: endgame (fewer than three
	// lesser pieces).
	assert.True(t, IsEndgame(newTestEngine(t, "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")))

	// One side still heavy: queen plus rook means no endgame even though
	// the other side is bare.
	assert.False(t, IsEndgame(newTestEngine(t, "4k3/8/8/8/8/8/8/R2QK3 w - - 0 1")))
}

func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	me := newTestEngine(t, engine.StartFEN)
	assert.Equal(t, 0, Evaluate(me, false, false))
}

func TestEvaluateSideToMovePerspective(t *testing.T) {
	// White is a queen up; the score is positive for White to move and
	// negative for Black to move.
	white := newTestEngine(t, "k7/8/8/8/8/8/8/KQ6 w - - 0 1")
	black := newTestEngine(t, "k7/8/8/8/8/8/8/KQ6 b - - 0 1")

	endgame := IsEndgame(white)
	scoreWhite := Evaluate(white, endgame, false)
	scoreBlack := Evaluate(black, endgame, false)

	assert.Positive(t, scoreWhite)
	assert.Negative(t, scoreBlack)
	assert.Equal(t, scoreWhite, -scoreBlack)
}

func TestMaterialAmplifierRewardsWinningSide(t *testing.T) {
	// A bare queen up is amplified beyond its base value by the
	// winning-side coefficient.
	me := newTestEngine(t, "k7/8/8/8/8/8/8/KQ6 w - - 0 1")
	assert.GreaterOrEqual(t, material(me), queenValue)
}

func TestKnightValueDropsWithFewerEnemyPawns(t *testing.T) {
	// Same knight, eight enemy pawns vs none.
	withPawns := newTestEngine(t, "k7/pppppppp/8/8/8/8/8/KN6 w - - 0 1")
	withoutPawns := newTestEngine(t, "k7/8/8/8/8/8/8/KN6 w - - 0 1")

	// Compare the knight side's raw material by removing the pawn
	// contribution of the enemy: with no enemy pawns the knight is worth
	// 5 centipawns less per missing pawn.
	deltaWith := material(withPawns)
	deltaWithout := material(withoutPawns)

	// withPawns is behind by eight pawns of material, so only its sign is
	// checked. The knight alone (no enemy pawns) is worth 320 - 40 = 280
	// before amplification, which keeps it below the base knight value.
	assert.Less(t, deltaWith, 0)
	assert.Greater(t, deltaWithout, 0)
	assert.Less(t, deltaWithout, knightValue)
}

func TestEvaluateCheckmate(t *testing.T) {
	// Black to move is mated; the first quiescence node reports the full
	// checkmate weight against the side to move.
	me := newTestEngine(t, "1R5K/R7/8/8/8/8/8/k7 b - - 0 1")
	require.True(t, me.InCheckmate())
	assert.Equal(t, -CheckmateWeight, Evaluate(me, IsEndgame(me), true))
}

func TestPieceValue(t *testing.T) {
	assert.Equal(t, 100, pieceValue(engine.Pawn))
	assert.Equal(t, 320, pieceValue(engine.Knight))
	assert.Equal(t, 330, pieceValue(engine.Bishop))
	assert.Equal(t, 500, pieceValue(engine.Rook))
	assert.Equal(t, 900, pieceValue(engine.Queen))
	assert.Equal(t, 10000, pieceValue(engine.King))
}

func TestPSTTablesMirror(t *testing.T) {
	// The black table is the white table reflected along the ranks.
	for kind := engine.Pawn; kind <= engine.King; kind++ {
		white := pstTable(engine.White, kind, false)
		black := pstTable(engine.Black, kind, false)
		for sq := 0; sq < 64; sq++ {
			assert.Equal(t, white[sq], black[63-sq])
		}
	}

	// Pawns and kings switch tables between phases.
	assert.NotEqual(t, *pstTable(engine.White, engine.Pawn, false), *pstTable(engine.White, engine.Pawn, true))
	assert.NotEqual(t, *pstTable(engine.White, engine.King, false), *pstTable(engine.White, engine.King, true))
	// The rest do not.
	assert.Equal(t, *pstTable(engine.White, engine.Rook, false), *pstTable(engine.White, engine.Rook, true))
}
