package repl

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/kmoroz/shakmat/internal/bot"
	"github.com/kmoroz/shakmat/internal/config"
	"github.com/kmoroz/shakmat/internal/engine"
	"github.com/kmoroz/shakmat/internal/movecache"
)

// REPL is the interactive command loop. Commands are case-insensitive;
// unknown input and malformed arguments are reported without changing the
// engine state.
type REPL struct {
	me       *engine.MoveEngine
	searcher *bot.Searcher
	renderer *BoardRenderer

	in  io.Reader
	out io.Writer

	selected   []engine.Move
	gamemode   bool
	ponderTime time.Duration
}

// New builds a REPL on the starting position using the given configuration
// and streams.
func New(cfg config.Config, in io.Reader, out io.Writer) (*REPL, error) {
	cache := movecache.New()
	board, err := engine.FromFEN(engine.StartFEN)
	if err != nil {
		return nil, err
	}
	me := engine.New(board, cache)
	me.FiftyMoveThreshold = cfg.Engine.FiftyMoveThreshold

	searcher := bot.NewSearcher(me)
	searcher.SetTTGenerations(cfg.Engine.TableGenerations)
	searcher.NullReduction = cfg.Engine.NullReduction

	return &REPL{
		me:         me,
		searcher:   searcher,
		renderer:   NewBoardRenderer(cfg.Display),
		in:         in,
		out:        out,
		ponderTime: time.Duration(cfg.Engine.PonderSeconds * float64(time.Second)),
	}, nil
}

// SetBook installs an opening book for the searcher.
func (r *REPL) SetBook(book bot.OpeningBook) {
	r.searcher.Book = book
}

// SetSearchLogger wires a logger for per-ponder search diagnostics.
func (r *REPL) SetSearchLogger(logger *log.Logger) {
	r.searcher.Logger = logger
}

// SetFEN replaces the position, resetting history.
func (r *REPL) SetFEN(fen string) error {
	return r.me.SetFEN(fen)
}

// Run reads and executes commands until quit or end of input. The returned
// error is nil on a clean quit.
func (r *REPL) Run() error {
	fmt.Fprintln(r.out, "shakmat chess engine")
	fmt.Fprintln(r.out, `Type "help" for the command list.`)
	r.printBoard()

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "(chess) ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, args, _ := strings.Cut(line, " ")
		cmd = strings.ToLower(cmd)
		args = strings.TrimSpace(args)

		if cmd == "quit" {
			return nil
		}
		r.dispatch(cmd, args)
	}
}

func (r *REPL) dispatch(cmd, args string) {
	switch cmd {
	case "d":
		r.printBoard()
	case "fen":
		r.cmdFEN(args)
	case "select":
		r.cmdSelect(args)
	case "move":
		r.cmdMove(args)
	case "undo":
		r.cmdUndo()
	case "list":
		r.cmdList()
	case "perft":
		r.cmdPerft(args)
	case "pondertime":
		r.cmdPonderTime(args)
	case "cpu":
		r.cmdCPU()
	case "gamemode":
		r.cmdGamemode()
	case "cpugame":
		r.cmdCPUGame()
	case "reset":
		r.cmdFEN(engine.StartFEN)
	case "help":
		r.cmdHelp()
	default:
		fmt.Fprintf(r.out, "Unknown command %q; type \"help\" for the command list.\n", cmd)
	}
}

func (r *REPL) printBoard() {
	b := r.me.Board()
	fmt.Fprintf(r.out, "Turn: %s, full moves: %d, halfmove clock: %d\n", b.Turn.Name(), b.FullMove, b.HalfMove)
	fmt.Fprintln(r.out, r.renderer.Render(b))
}

// announceTurn reports check and terminal states after a move.
func (r *REPL) announceTurn() {
	switch r.me.TerminalStatus() {
	case engine.Checkmate:
		fmt.Fprintln(r.out, "Checkmate!")
	case engine.Stalemate:
		fmt.Fprintln(r.out, "Stalemate")
	case engine.Draw:
		fmt.Fprintln(r.out, "Draw")
	default:
		if r.me.InCheck() {
			fmt.Fprintln(r.out, "Check!")
		}
	}
}

func (r *REPL) cmdFEN(args string) {
	if args == "" {
		fmt.Fprintln(r.out, r.me.Board().FEN())
		return
	}
	if err := r.me.SetFEN(args); err != nil {
		fmt.Fprintf(r.out, "Invalid FEN: %v\n", err)
		return
	}
	r.selected = nil
	r.printBoard()
}

func (r *REPL) cmdSelect(args string) {
	sq, ok := engine.ParseSquare(args)
	if !ok {
		fmt.Fprintln(r.out, "Invalid coordinates")
		return
	}
	r.selected = r.me.LegalMovesFrom(sq)
	if len(r.selected) == 0 {
		fmt.Fprintf(r.out, "No legal moves from %s\n", sq)
		return
	}
	for i, m := range r.selected {
		fmt.Fprintf(r.out, "%d: %s (%s)\n", i, m, m.UCI())
	}
}

func (r *REPL) cmdMove(args string) {
	idx, err := strconv.Atoi(args)
	if err != nil || idx < 0 || idx >= len(r.selected) {
		fmt.Fprintln(r.out, "Invalid move index; use \"select\" first.")
		return
	}
	r.me.Make(r.selected[idx])
	r.selected = nil
	r.printBoard()

	if r.gamemode {
		r.cmdCPU()
	}
	r.announceTurn()
}

func (r *REPL) cmdUndo() {
	if len(r.me.MoveStack()) == 0 {
		fmt.Fprintln(r.out, "Nothing to undo")
		return
	}
	r.me.Unmake()
	r.selected = nil
	r.printBoard()
}

func (r *REPL) cmdList() {
	moves := r.me.LegalMoves()
	fmt.Fprintf(r.out, "Moves: %d\n", len(moves))
	for _, m := range moves {
		fmt.Fprintf(r.out, "%s (%s)\n", m, m.UCI())
	}
}

func (r *REPL) cmdPerft(args string) {
	depth, err := strconv.Atoi(args)
	if err != nil || depth < 1 {
		fmt.Fprintln(r.out, "Invalid depth")
		return
	}

	start := time.Now()
	var total uint64
	for _, entry := range r.me.Divide(depth) {
		fmt.Fprintf(r.out, "%s: %d\n", entry.Move.UCI(), entry.Nodes)
		total += entry.Nodes
	}
	fmt.Fprintf(r.out, "Nodes: %d in %.2fs\n", total, time.Since(start).Seconds())
}

func (r *REPL) cmdPonderTime(args string) {
	seconds, err := strconv.ParseFloat(args, 64)
	if err != nil || seconds <= 0 {
		fmt.Fprintln(r.out, "Please enter a positive number of seconds")
		return
	}
	r.ponderTime = time.Duration(seconds * float64(time.Second))
	fmt.Fprintf(r.out, "Ponder time set to %.2fs\n", seconds)
}

// cmdCPU searches and plays the engine's choice; it reports whether a move
// was actually played.
func (r *REPL) cmdCPU() bool {
	score, move, err := r.searcher.Ponder(r.ponderTime)
	if err != nil {
		fmt.Fprintf(r.out, "Search failed: %v\n", err)
		return false
	}
	if move.Null {
		fmt.Fprintln(r.out, "No legal moves available")
		return false
	}

	fmt.Fprintf(r.out, "Evaluation %d, move: %s\n", score, move.UCI())
	r.me.Make(move)
	r.printBoard()
	r.announceTurn()
	return true
}

func (r *REPL) cmdGamemode() {
	r.gamemode = !r.gamemode
	if r.gamemode {
		fmt.Fprintln(r.out, "Gamemode toggled on!")
	} else {
		fmt.Fprintln(r.out, "Gamemode toggled off!")
	}
}

func (r *REPL) cmdCPUGame() {
	for r.me.TerminalStatus() == engine.Ongoing {
		if !r.cmdCPU() {
			break
		}
	}
}

func (r *REPL) cmdHelp() {
	help := []struct{ cmd, desc string }{
		{"d", "print the board and side to move"},
		{"fen [FEN]", "print the current FEN, or set the position from one"},
		{"select <sq>", "list legal moves from a square"},
		{"move <index>", "play the indexed move from the last select"},
		{"undo", "take back the last move"},
		{"list", "print every legal move"},
		{"perft <n>", "divide-perft to depth n"},
		{"pondertime <seconds>", "set the search budget"},
		{"cpu", "search and play the engine's choice"},
		{"gamemode", "toggle automatic engine replies"},
		{"cpugame", "engine vs engine until the game ends"},
		{"reset", "set the starting position"},
		{"quit", "exit"},
	}
	for _, h := range help {
		fmt.Fprintf(r.out, "  %-22s %s\n", h.cmd, h.desc)
	}
}
