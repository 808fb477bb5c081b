// Package bot provides the chess engines that can play a side: the
// alpha-beta searcher and a random mover, behind a common interface.
package bot

import (
	"context"

	"github.com/kmoroz/shakmat/internal/engine"
)

// Engine represents a chess bot that can select moves.
type Engine interface {
	// SelectMove returns the bot's chosen move for the position held by
	// the move engine. The context allows cancellation and deadlines.
	SelectMove(ctx context.Context, me *engine.MoveEngine) (engine.Move, error)

	// Name returns a human-readable name for this engine.
	Name() string

	// Close releases any resources held by the engine. Implementations
	// must be idempotent.
	Close() error
}

// OpeningBook is an opaque opening-book lookup: given a FEN it returns a
// book move, or reports that none is known. Absence of a book is not an
// error; the searcher simply skips the consult.
type OpeningBook interface {
	Lookup(fen string) (engine.Move, bool)
}
