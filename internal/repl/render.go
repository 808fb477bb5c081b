// Package repl implements the text-line interface: a case-insensitive
// command loop over standard input and a colorized board renderer.
package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kmoroz/shakmat/internal/config"
	"github.com/kmoroz/shakmat/internal/engine"
)

// BoardRenderer renders the board to the terminal. The display section of
// the configuration selects ASCII or Unicode pieces, coordinate legends,
// and colors.
type BoardRenderer struct {
	cfg        config.DisplayConfig
	whiteStyle lipgloss.Style
	blackStyle lipgloss.Style
}

// NewBoardRenderer creates a renderer for the given display configuration.
// Colors are dropped when the terminal does not support them.
func NewBoardRenderer(cfg config.DisplayConfig) *BoardRenderer {
	if termenv.EnvColorProfile() == termenv.Ascii {
		cfg.UseColors = false
	}
	return &BoardRenderer{
		cfg:        cfg,
		whiteStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		blackStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
	}
}

// unicodePieces maps [color][kind] to the chess figurines.
var unicodePieces = [2][6]rune{
	{'♙', '♘', '♗', '♖', '♕', '♔'},
	{'♟', '♞', '♝', '♜', '♛', '♚'},
}

// Render draws the board from White's perspective, rank 8 at the top.
func (r *BoardRenderer) Render(b *engine.Board) string {
	var sb strings.Builder

	for rankFromTop := 0; rankFromTop < 8; rankFromTop++ {
		if r.cfg.ShowCoords {
			fmt.Fprintf(&sb, "%d ", 8-rankFromTop)
		}
		for file := 0; file < 8; file++ {
			if file > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(r.squareSymbol(b, engine.NewSquare(file, rankFromTop)))
		}
		sb.WriteString("\n")
	}

	if r.cfg.ShowCoords {
		sb.WriteString("  a b c d e f g h")
	}

	return sb.String()
}

func (r *BoardRenderer) squareSymbol(b *engine.Board, sq engine.Square) string {
	color, kind, occupied := b.PieceAt(sq)
	if !occupied {
		return "."
	}

	var symbol string
	if r.cfg.UseUnicode {
		symbol = string(unicodePieces[color][kind])
	} else {
		ch := kind.String()
		if color == engine.White {
			ch = strings.ToUpper(ch)
		}
		symbol = ch
	}

	if !r.cfg.UseColors {
		return symbol
	}
	if color == engine.White {
		return r.whiteStyle.Render(symbol)
	}
	return r.blackStyle.Render(symbol)
}
