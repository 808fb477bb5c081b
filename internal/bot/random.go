package bot

import (
	"context"
	"errors"
	"math/rand"

	"github.com/kmoroz/shakmat/internal/engine"
)

// randomEngine selects moves at random with a tactical bias. It exists as
// a cheap sparring partner and as the simplest Engine implementation.
type randomEngine struct {
	rng    *rand.Rand
	closed bool
}

// NewRandomEngine builds a random mover seeded deterministically.
func NewRandomEngine(seed int64) Engine {
	return &randomEngine{rng: rand.New(rand.NewSource(seed))}
}

// Name returns the engine name.
func (e *randomEngine) Name() string {
	return "random"
}

// Close releases the engine. Idempotent.
func (e *randomEngine) Close() error {
	e.closed = true
	return nil
}

// SelectMove returns a weighted-random legal move: captures are preferred
// 70% of the time when available.
func (e *randomEngine) SelectMove(ctx context.Context, me *engine.MoveEngine) (engine.Move, error) {
	if e.closed {
		return engine.Move{}, errors.New("engine is closed")
	}
	if err := ctx.Err(); err != nil {
		return engine.Move{}, err
	}

	moves := me.LegalMoves()
	if len(moves) == 0 {
		return engine.Move{}, errors.New("no legal moves available")
	}
	if len(moves) == 1 {
		return moves[0], nil
	}

	var captures []engine.Move
	for _, m := range moves {
		if m.Capture {
			captures = append(captures, m)
		}
	}
	if len(captures) > 0 && e.rng.Float64() < 0.7 {
		return captures[e.rng.Intn(len(captures))], nil
	}
	return moves[e.rng.Intn(len(moves))], nil
}
