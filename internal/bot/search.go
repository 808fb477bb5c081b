package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/kmoroz/shakmat/internal/engine"
)

const (
	// DefaultMaxDepth caps iterative deepening.
	DefaultMaxDepth = 50
	// DefaultNullReduction is the null-move depth reduction R.
	DefaultNullReduction = 3
	// DefaultPonderTime is the search budget when none is configured.
	DefaultPonderTime = 10 * time.Second

	alphaDefault = -100000000
	betaDefault  = 100000000

	// Move ordering weights.
	weightPV        = 10000
	weightPromotion = 900
	weightEnPassant = 200
	captureFloor    = 50

	// Delta pruning margins for quiescence.
	deltaMargin     = 900
	deltaQueenPromo = 775
)

// errTimeUp unwinds the current search iteration when the ponder budget
// expires. It never surfaces to callers; the previous iteration's result is
// returned instead.
var errTimeUp = errors.New("search time up")

// Searcher finds the best move by iterative-deepening alpha-beta with
// quiescence, null-move pruning, move ordering and a generational
// transposition table. It drives the move engine it was built around; the
// make/unmake pairs always complete, so the engine is back in its original
// position whenever a search returns, timed out or not.
type Searcher struct {
	me *engine.MoveEngine
	tt *TranspositionTable

	// Book, when non-nil, is consulted once per ponder.
	Book OpeningBook

	// Logger, when non-nil, receives per-ponder diagnostics.
	Logger *log.Logger

	// MaxDepth caps iterative deepening.
	MaxDepth int

	// NullReduction is the null-move reduction R: null moves apply when
	// more than R plies remain and search the child at depth d-1-R.
	NullReduction int

	// Presort enables move ordering.
	Presort bool

	// PonderTime is the default search budget for SelectMove.
	PonderTime time.Duration

	endgame   bool
	rootDepth int
	depthLeft int

	lastPonder *node
	pondering  bool
	tStart     time.Time
	budget     time.Duration
	ctx        context.Context

	followingPV bool
	leftNode    *node
	leftDepth   int

	nodesExplored uint64
	nodeCount     uint64
	ttReads       uint64
	nullPrunes    uint64
	closed        bool
}

// NewSearcher builds a searcher around the given move engine.
func NewSearcher(me *engine.MoveEngine) *Searcher {
	return &Searcher{
		me:            me,
		tt:            NewTranspositionTable(DefaultTTGenerations),
		MaxDepth:      DefaultMaxDepth,
		NullReduction: DefaultNullReduction,
		Presort:       true,
		PonderTime:    DefaultPonderTime,
	}
}

// SetTTGenerations replaces the transposition table with one keeping the
// given number of generations.
func (s *Searcher) SetTTGenerations(n int) {
	s.tt = NewTranspositionTable(n)
}

// Name returns the engine name.
func (s *Searcher) Name() string {
	return "shakmat alpha-beta"
}

// Close releases the searcher. Idempotent.
func (s *Searcher) Close() error {
	s.closed = true
	return nil
}

// SelectMove implements the Engine interface: it ponders for the
// configured budget (bounded by the context deadline, if any) and returns
// the best move.
func (s *Searcher) SelectMove(ctx context.Context, me *engine.MoveEngine) (engine.Move, error) {
	if s.closed {
		return engine.Move{}, errors.New("engine is closed")
	}
	if me != s.me {
		return engine.Move{}, errors.New("searcher is bound to a different move engine")
	}

	budget := s.PonderTime
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < budget {
			budget = remaining
		}
	}

	s.ctx = ctx
	defer func() { s.ctx = nil }()

	_, move, err := s.Ponder(budget)
	if err != nil {
		return engine.Move{}, err
	}
	if move.Null {
		return engine.Move{}, errors.New("no legal moves available")
	}
	return move, nil
}

// Ponder searches for the best move within the wall-clock budget and
// returns its score (centipawns, side to move's perspective) and the move.
// The transposition table is aged once, a depth-1 search runs
// unconditionally so a move is always available, and deeper iterations run
// until the budget expires; an expired iteration is discarded whole. A
// successful opening-book consult short-circuits the returned move (with
// score 0) but the search still runs to populate the table.
func (s *Searcher) Ponder(budget time.Duration) (int, engine.Move, error) {
	s.tt.AdvanceTurn()
	s.resetCounters()

	var bookMove engine.Move
	bookFound := false
	if s.Book != nil {
		bookMove, bookFound = s.Book.Lookup(s.me.Board().FEN())
	}

	first, err := s.searchTree(1)
	if err != nil {
		return 0, engine.NullMove, err
	}
	s.lastPonder = first

	s.pondering = true
	s.tStart = time.Now()
	s.budget = budget
	defer func() {
		s.pondering = false
		s.lastPonder = nil
	}()

	depthReached := 1
	for depth := 2; depth <= s.MaxDepth; depth++ {
		result, err := s.searchTree(depth)
		if errors.Is(err, errTimeUp) {
			break
		}
		if err != nil {
			return 0, engine.NullMove, err
		}
		s.lastPonder = result
		depthReached = depth
	}

	score := s.lastPonder.score
	best := s.lastPonder.bestMove

	if s.Logger != nil {
		branch := 0.0
		if s.nodeCount > 0 {
			branch = math.Pow(float64(s.nodeCount), 1/float64(depthReached))
		}
		s.Logger.Printf("depth %d, %d nodes, %d tt reads, %d null prunes, branching factor %.2f",
			depthReached, s.nodeCount, s.ttReads, s.nullPrunes, branch)
	}

	if bookFound {
		return 0, bookMove, nil
	}
	return score, best, nil
}

// SearchToDepth runs a single full-window search at exactly the given
// depth, with no time budget, and returns the score and best move.
func (s *Searcher) SearchToDepth(depth int) (int, engine.Move, error) {
	result, err := s.searchTree(depth)
	if err != nil {
		return 0, engine.NullMove, err
	}
	return result.score, result.bestMove, nil
}

func (s *Searcher) resetCounters() {
	s.nodesExplored = 0
	s.nodeCount = 0
	s.ttReads = 0
	s.nullPrunes = 0
}

// checkStop raises the time-up signal. It runs at every node entry, before
// any make, so unwinding never leaves a half-made position.
func (s *Searcher) checkStop() error {
	if s.ctx != nil && s.ctx.Err() != nil {
		return s.ctx.Err()
	}
	if s.pondering && time.Since(s.tStart) > s.budget {
		return errTimeUp
	}
	return nil
}

// searchTree runs one full-window alpha-beta iteration at the given depth.
func (s *Searcher) searchTree(depth int) (*node, error) {
	if depth <= 0 {
		panic(&engine.InvariantError{Msg: "search depth must be positive"})
	}
	if err := s.checkStop(); err != nil {
		return nil, err
	}

	allowNull := s.me.AllowNull
	s.me.AllowNull = true
	defer func() { s.me.AllowNull = allowNull }()

	s.endgame = IsEndgame(s.me)
	s.rootDepth = depth
	s.depthLeft = depth
	s.followingPV = false
	s.leftNode = nil

	return s.alphabeta(depth, alphaDefault, betaDefault, engine.NullMove, true)
}

// alphabeta is the fail-hard negamax search. It returns exactly alpha or
// beta on the respective cutoffs and a score inside the window otherwise.
func (s *Searcher) alphabeta(depthLeft, alpha, beta int, pMove engine.Move, allowNull bool) (*node, error) {
	if err := s.checkStop(); err != nil {
		return nil, err
	}
	s.depthLeft = depthLeft

	cNode := &node{move: pMove, bestMove: engine.NullMove}

	if entry, ok := s.tt.Probe(s.me.CurrentHash(), depthLeft); ok && !s.followingPV {
		if probed, hit := resolveProbe(cNode, entry, alpha, beta); hit {
			s.ttReads++
			return probed, nil
		}
	}

	s.nodeCount++

	if depthLeft == 0 {
		s.nodesExplored++
		return s.quiescence(alpha, beta, 0, pMove)
	}

	if allowNull && !s.followingPV && depthLeft != s.rootDepth &&
		depthLeft > s.NullReduction && !s.endgame && !s.me.InCheck() {
		cut, err := s.nullEvaluation(depthLeft, beta)
		if err != nil {
			return nil, err
		}
		if cut {
			s.nullPrunes++
			cNode.score = beta
			cNode.betaCut = true
			return cNode, nil
		}
	}

	isTerminal := true
	alphaRaised := false

	var presort func(engine.Move) int
	if s.Presort {
		presort = s.presortKey
	}

	err := s.me.LoopMoves(func(m engine.Move) (bool, error) {
		isTerminal = false

		sub, err := s.alphabeta(depthLeft-1, -beta, -alpha, m, allowNull)
		if err != nil {
			return false, err
		}
		score := -sub.score

		if score >= beta {
			cNode.bestMove = m
			cNode.bestNode = sub
			cNode.betaCut = true
			alpha = beta
			return false, nil
		}
		if score > alpha {
			cNode.bestMove = m
			cNode.bestNode = sub
			alpha = score
			alphaRaised = true
		}
		return true, nil
	}, presort, nil)
	if err != nil {
		return nil, err
	}

	score := alpha

	if isTerminal {
		switch s.me.TerminalStatus() {
		case engine.Draw, engine.Stalemate:
			score = 0
		case engine.Checkmate:
			// Deeper remaining depth means a shorter mate; reward it.
			score = -(CheckmateWeight + 1000*depthLeft)
		default:
			panic(&engine.InvariantError{Msg: "no moves but position is not terminal"})
		}
		cNode.bestMove = engine.NullMove
		cNode.bestNode = nil
	}

	cNode.score = score

	bound := boundUpper
	if cNode.betaCut {
		bound = boundLower
	} else if alphaRaised {
		bound = boundExact
	}
	s.tt.Store(s.me.CurrentHash(), ttEntry{depth: depthLeft, bound: bound, score: score, node: cNode})

	return cNode, nil
}

// resolveProbe translates a stored entry into an immediate return when its
// bound is compatible with the current window.
func resolveProbe(cNode *node, entry ttEntry, alpha, beta int) (*node, bool) {
	adopt := func(score int, betaCut bool) *node {
		cNode.score = score
		cNode.betaCut = betaCut
		if entry.node != nil {
			cNode.bestMove = entry.node.bestMove
			cNode.bestNode = entry.node.bestNode
		}
		return cNode
	}
	switch entry.bound {
	case boundLower:
		if entry.score >= beta {
			return adopt(beta, true), true
		}
	case boundUpper:
		if entry.score <= alpha {
			cNode.score = alpha
			return cNode, true
		}
	case boundExact:
		switch {
		case entry.score >= beta:
			return adopt(beta, true), true
		case entry.score <= alpha:
			cNode.score = alpha
			return cNode, true
		default:
			return adopt(entry.score, false), true
		}
	}
	return nil, false
}

// nullEvaluation makes the null move and searches the child with a reduced
// depth and a null window around beta. A returned score at or above beta
// proves the position is good enough to cut. Null moves stay disabled in
// the child.
func (s *Searcher) nullEvaluation(depthLeft, beta int) (bool, error) {
	newDepth := depthLeft - 1 - s.NullReduction
	if newDepth < 0 {
		newDepth = 0
	}

	s.me.Make(engine.NullMove)
	sub, err := s.alphabeta(newDepth, -beta, -beta+1, engine.NullMove, false)
	s.me.Unmake()
	if err != nil {
		return false, err
	}
	return -sub.score >= beta, nil
}

// quiescence extends the search past the horizon through good captures
// only, with stand-pat and delta pruning.
func (s *Searcher) quiescence(alpha, beta, depth int, pMove engine.Move) (*node, error) {
	if err := s.checkStop(); err != nil {
		return nil, err
	}

	standPat := Evaluate(s.me, s.endgame, depth == 0)
	if standPat >= beta {
		return &node{move: pMove, bestMove: engine.NullMove, score: beta, betaCut: true}, nil
	}

	delta := deltaMargin
	if pMove.Type == engine.MovePromoteQueen {
		delta += deltaQueenPromo
	}
	if standPat < alpha-delta {
		return &node{move: pMove, bestMove: engine.NullMove, score: alpha}, nil
	}

	if standPat > alpha {
		alpha = standPat
	}

	cNode := &node{move: pMove, bestMove: engine.NullMove}

	err := s.me.LoopMoves(func(m engine.Move) (bool, error) {
		sub, err := s.quiescence(-beta, -alpha, depth+1, m)
		if err != nil {
			return false, err
		}
		score := -sub.score

		if score >= beta {
			cNode.bestMove = m
			cNode.bestNode = sub
			cNode.betaCut = true
			alpha = beta
			return false, nil
		}
		if score > alpha {
			cNode.bestMove = m
			cNode.bestNode = sub
			alpha = score
		}
		return true, nil
	}, nil, func(m engine.Move) bool {
		return m.Capture && !s.isBadCapture(m)
	})
	if err != nil {
		return nil, err
	}

	cNode.score = alpha
	return cNode, nil
}

// presortKey orders moves for alpha-beta efficiency: the prior iteration's
// principal variation first, then promotions, en passant, winning-looking
// captures, and finally the piece-square delta of the move.
func (s *Searcher) presortKey(m engine.Move) int {
	weight := 0

	if s.pondering && s.followingPV {
		if s.depthLeft == 1 {
			s.followingPV = false
		}
		if s.leftNode == nil || s.leftNode.bestMove.Null {
			s.followingPV = false
		}
		if s.followingPV && s.depthLeft < s.leftDepth && m.ID() == s.leftNode.bestMove.ID() {
			s.leftNode = s.leftNode.bestNode
			s.leftDepth = s.depthLeft
			return weightPV
		}
	}
	if s.pondering && s.depthLeft == s.rootDepth &&
		s.lastPonder != nil && !s.lastPonder.bestMove.Null &&
		m.ID() == s.lastPonder.bestMove.ID() {
		s.followingPV = true
		s.leftNode = s.lastPonder.bestNode
		s.leftDepth = s.rootDepth
		return weightPV
	}

	if m.Type.IsPromotion() {
		weight += weightPromotion
	}
	if m.Type == engine.MoveEnPassant {
		weight += weightEnPassant
	}

	if m.Capture && m.Piece != engine.King && !s.isBadCapture(m) {
		diff := pieceValue(m.CaptureKind) - pieceValue(m.Piece)
		if diff < captureFloor {
			diff = captureFloor
		}
		weight += diff
	}

	tbl := pstTable(m.Color, m.Piece, s.endgame)
	weight += tbl[m.To] - tbl[m.From]

	return weight
}

// isBadCapture is the static exchange heuristic: pawn captures are always
// good, a capture that wins or roughly trades material is good, and the
// rest are good only when the target square is not defended by an enemy
// pawn.
func (s *Searcher) isBadCapture(m engine.Move) bool {
	if m.Piece == engine.Pawn {
		return false
	}
	if pieceValue(m.Piece) <= pieceValue(m.CaptureKind)+200 {
		return false
	}
	return s.defendedByPawn(m.CaptureSq, m.Color.Other())
}

// defendedByPawn reports whether a pawn of the given color attacks sq.
func (s *Searcher) defendedByPawn(sq engine.Square, by engine.Color) bool {
	c := s.me.Cache()
	return c.PawnAttackMasks[by.Other()][sq]&s.me.Board().Pieces[by][engine.Pawn] != 0
}

// Stats returns the counters of the most recent ponder, formatted for
// display.
func (s *Searcher) Stats() string {
	return fmt.Sprintf("%d nodes, %d tt reads, %d null prunes", s.nodeCount, s.ttReads, s.nullPrunes)
}
