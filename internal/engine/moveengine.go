package engine

import (
	"sort"

	"github.com/kmoroz/shakmat/internal/movecache"
)

// DefaultFiftyMoveThreshold is the halfmove count at which the engine
// claims the fifty-move draw. Standard chess fires at 100 halfmoves; this
// engine's own convention is the shorter 50, and the value is configurable.
const DefaultFiftyMoveThreshold = 50

// MoveEngine drives a Board through reversible make/unmake cycles while
// maintaining the position hash, the checker list and the move history. It
// filters pseudo-legal moves to legal ones and detects terminal states.
type MoveEngine struct {
	board *Board
	cache *movecache.Cache

	// legalMode enables the operations that assume exactly one king per
	// color (pins, checkers, king-square lookup) and forbids capturing a
	// king or passing the null move while in check.
	legalMode bool

	// AllowNull permits making the null move. The search enables it per
	// frame; it is off everywhere else.
	AllowNull bool

	// CanDraw gates the draw rules. Perft switches it off so that node
	// counts match the published figures.
	CanDraw bool

	// FiftyMoveThreshold is the halfmove clock value at which the
	// fifty-move rule fires.
	FiftyMoveThreshold int

	instructions []MoveInstruction
	moves        []Move
	checkers     [][]Checker
	hashes       []uint64
}

// New creates a MoveEngine in legal mode for the given board. It panics
// with a LegalModeError if either side does not have exactly one king.
func New(b *Board, c *movecache.Cache) *MoveEngine {
	e := &MoveEngine{
		board:              b,
		cache:              c,
		CanDraw:            true,
		FiftyMoveThreshold: DefaultFiftyMoveThreshold,
	}
	e.enterLegalMode()
	e.hashes = append(e.hashes, e.ComputeHash())
	e.checkers = append(e.checkers, e.AttackersOf(b.Turn.Other(), e.KingSquare(b.Turn), false))
	return e
}

func (e *MoveEngine) enterLegalMode() {
	if e.board.Count(White, King) != 1 || e.board.Count(Black, King) != 1 {
		panic(&LegalModeError{Msg: "legal mode requires exactly one king per side", MoveStack: e.moves})
	}
	e.legalMode = true
}

// Board returns the underlying board. Callers must not mutate it directly.
func (e *MoveEngine) Board() *Board {
	return e.board
}

// Cache returns the move cache the engine was built with.
func (e *MoveEngine) Cache() *movecache.Cache {
	return e.cache
}

// Turn returns the side to move.
func (e *MoveEngine) Turn() Color {
	return e.board.Turn
}

// CurrentHash returns the Zobrist hash of the current position.
func (e *MoveEngine) CurrentHash() uint64 {
	return e.hashes[len(e.hashes)-1]
}

// HashHistory returns the hash of every position reached so far, the
// current one last.
func (e *MoveEngine) HashHistory() []uint64 {
	return e.hashes
}

// MoveStack returns the moves made and not yet unmade.
func (e *MoveEngine) MoveStack() []Move {
	return e.moves
}

// Checkers returns the pieces giving check in the current position.
func (e *MoveEngine) Checkers() []Checker {
	return e.checkers[len(e.checkers)-1]
}

// InCheck reports whether the side to move is in check.
func (e *MoveEngine) InCheck() bool {
	return len(e.Checkers()) > 0
}

// KingSquare returns the king square for the color. Requires legal mode.
func (e *MoveEngine) KingSquare(color Color) Square {
	if !e.legalMode {
		panic(&LegalModeError{Msg: "king position not guaranteed outside legal mode", MoveStack: e.moves})
	}
	return e.board.Locations[color][King][0]
}

// SetFEN replaces the position and resets all history.
func (e *MoveEngine) SetFEN(fen string) error {
	b, err := FromFEN(fen)
	if err != nil {
		return err
	}
	e.SetBoard(b)
	return nil
}

// SetBoard replaces the position and resets all history.
func (e *MoveEngine) SetBoard(b *Board) {
	e.board = b
	e.instructions = e.instructions[:0]
	e.moves = e.moves[:0]
	e.checkers = e.checkers[:0]
	e.hashes = e.hashes[:0]
	e.enterLegalMode()
	e.hashes = append(e.hashes, e.ComputeHash())
	e.checkers = append(e.checkers, e.AttackersOf(b.Turn.Other(), e.KingSquare(b.Turn), false))
}

// Make executes a move without checking its legality, pushes the undo
// record, and updates the hash and checker stacks.
func (e *MoveEngine) Make(m Move) {
	if m.Null {
		if !e.AllowNull {
			panic(&LegalModeError{Msg: "null move while null moves are disabled", MoveStack: e.moves})
		}
		if e.legalMode && e.InCheck() {
			panic(&LegalModeError{Msg: "null move while in check", MoveStack: e.moves})
		}
	}
	if e.legalMode && m.Capture && m.CaptureKind == King {
		panic(&LegalModeError{Msg: "king capture in legal mode", MoveStack: e.moves})
	}

	inst := buildInstruction(e.board, e.cache, m)
	e.board.apply(&inst)
	e.instructions = append(e.instructions, inst)
	e.moves = append(e.moves, m)
	e.hashes = append(e.hashes, updateHash(e.CurrentHash(), e.cache, &inst))

	if e.legalMode {
		e.checkers = append(e.checkers, e.AttackersOf(e.board.Turn.Other(), e.KingSquare(e.board.Turn), false))
	} else {
		e.checkers = append(e.checkers, nil)
	}
}

// Unmake reverses the most recent move and pops every stack.
func (e *MoveEngine) Unmake() {
	if len(e.instructions) == 0 {
		panic(&InvariantError{Msg: "unmake with empty move stack"})
	}
	inst := e.instructions[len(e.instructions)-1]
	e.board.undo(&inst)
	e.instructions = e.instructions[:len(e.instructions)-1]
	e.moves = e.moves[:len(e.moves)-1]
	e.hashes = e.hashes[:len(e.hashes)-1]
	e.checkers = e.checkers[:len(e.checkers)-1]
}

// MoveLegal reports whether a pseudo-legal move is legal given the current
// pin set. The null move is never legal here. Requires legal mode.
func (e *MoveEngine) MoveLegal(m Move, pins []Pin) bool {
	if m.Null {
		return false
	}
	if !e.legalMode {
		panic(&LegalModeError{Msg: "legality test requires legal mode", MoveStack: e.moves})
	}

	them := e.board.Turn.Other()

	if e.InCheck() {
		return e.inCheckLegal(m, pins)
	}

	if pin, pinned := findPin(pins, m.From); pinned {
		if pin.EnPassantOnly {
			if m.Type == MoveEnPassant {
				return false
			}
		} else if e.cache.LineOf[pin.LineType][m.To] != pin.LineIndex {
			return false
		}
	}

	if m.Piece == King {
		if e.SquareAttacked(them, m.To, true) {
			return false
		}
	}
	// Castling may not pass through an attacked square; the landing square
	// is covered by the king-move test above.
	switch m.Type {
	case MoveCastleWest:
		if e.SquareAttacked(them, m.From-1, false) {
			return false
		}
	case MoveCastleEast:
		if e.SquareAttacked(them, m.From+1, false) {
			return false
		}
	}

	return true
}

// inCheckLegal handles the in-check cases: king retreat, capturing the
// checker, or interposing on a slider's line.
func (e *MoveEngine) inCheckLegal(m Move, pins []Pin) bool {
	them := e.board.Turn.Other()

	if m.IsCastle() {
		return false
	}
	if m.Piece == King {
		return !e.SquareAttacked(them, m.To, true)
	}

	checkers := e.Checkers()
	if len(checkers) > 1 {
		return false
	}

	if pin, pinned := findPin(pins, m.From); pinned {
		if !pin.EnPassantOnly {
			return false
		}
		if m.Type == MoveEnPassant {
			return false
		}
	}

	checker := checkers[0]
	if m.Capture && m.CaptureSq == checker.Square {
		return true
	}
	if checker.Kind == Pawn || checker.Kind == Knight {
		return false
	}
	king := e.KingSquare(e.board.Turn)
	return e.cache.Between[checker.Square][king].IsSet(int(m.To))
}

// LegalMoves returns every legal move for the side to move. A position
// already drawn by rule yields no moves.
func (e *MoveEngine) LegalMoves() []Move {
	if e.IsDraw() {
		return nil
	}
	return e.filterLegal(PseudoMoves(e.board, e.cache))
}

// LegalMovesFrom returns the legal moves originating from one square.
func (e *MoveEngine) LegalMovesFrom(sq Square) []Move {
	if e.IsDraw() {
		return nil
	}
	return e.filterLegal(PseudoMovesFrom(e.board, e.cache, sq))
}

func (e *MoveEngine) filterLegal(pseudo []Move) []Move {
	pins := e.Pins()
	legal := pseudo[:0]
	for _, m := range pseudo {
		if e.MoveLegal(m, pins) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves reports whether the side to move has any legal move,
// without materializing the full list. A drawn position has none.
func (e *MoveEngine) HasLegalMoves() bool {
	if e.IsDraw() {
		return false
	}
	pins := e.Pins()
	for _, m := range PseudoMoves(e.board, e.cache) {
		if e.MoveLegal(m, pins) {
			return true
		}
	}
	return false
}

// LoopMoves iterates the legal moves, making each, calling eval, and
// unmaking. A presort key orders moves highest first; an include filter
// restricts which pseudo-legal moves are considered. Iteration stops when
// eval returns false or an error.
func (e *MoveEngine) LoopMoves(eval func(Move) (bool, error), presort func(Move) int, include func(Move) bool) error {
	if !e.legalMode {
		panic(&LegalModeError{Msg: "move loop requires legal mode", MoveStack: e.moves})
	}

	pseudo := PseudoMoves(e.board, e.cache)
	if include != nil {
		kept := pseudo[:0]
		for _, m := range pseudo {
			if include(m) {
				kept = append(kept, m)
			}
		}
		pseudo = kept
	}
	if e.IsDraw() {
		pseudo = nil
	}

	legal := e.filterLegal(pseudo)

	if presort != nil {
		type scored struct {
			move Move
			key  int
		}
		items := make([]scored, len(legal))
		for i, m := range legal {
			items[i] = scored{move: m, key: presort(m)}
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].key > items[j].key
		})
		for i := range items {
			legal[i] = items[i].move
		}
	}

	for _, m := range legal {
		e.Make(m)
		cont, err := eval(m)
		e.Unmake()
		if err != nil {
			return err
		}
		if !cont {
			break
		}
	}
	return nil
}
