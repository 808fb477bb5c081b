package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN builds a Board from a FEN string. The halfmove clock and full
// move number are optional and default to 0 and 1. The en-passant field
// holds the capture square; the board stores the pushed pawn's own square,
// one rank behind it.
func FromFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fmt.Errorf("FEN must have 4-6 fields, got %d", len(parts))
	}

	b := NewBoard()

	rows := strings.Split(parts[0], "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("FEN piece placement must have 8 ranks, got %d", len(rows))
	}
	for rankFromTop, row := range rows {
		file := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file > 7 {
				return nil, fmt.Errorf("rank %d overflows the board", 8-rankFromTop)
			}
			color := Black
			lower := ch
			if ch >= 'A' && ch <= 'Z' {
				color = White
				lower = ch - 'A' + 'a'
			}
			kind, ok := kindFromLetter(lower)
			if !ok {
				return nil, fmt.Errorf("invalid piece character: %c", ch)
			}
			b.Add(NewSquare(file, rankFromTop), color, kind)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("rank %d has %d squares, expected 8", 8-rankFromTop, file)
		}
	}

	switch parts[1] {
	case "w":
		b.Turn = White
	case "b":
		b.Turn = Black
	default:
		return nil, fmt.Errorf("invalid active color: %q", parts[1])
	}

	if parts[2] != "-" {
		for i := 0; i < len(parts[2]); i++ {
			switch parts[2][i] {
			case 'K':
				b.Castling = b.Castling.With(White, sideEast)
			case 'Q':
				b.Castling = b.Castling.With(White, sideWest)
			case 'k':
				b.Castling = b.Castling.With(Black, sideEast)
			case 'q':
				b.Castling = b.Castling.With(Black, sideWest)
			default:
				return nil, fmt.Errorf("invalid castling character: %c", parts[2][i])
			}
		}
	}

	if parts[3] != "-" {
		capSq, ok := ParseSquare(parts[3])
		if !ok {
			return nil, fmt.Errorf("invalid en passant square: %q", parts[3])
		}
		// The capture square sits behind the pushed pawn from the mover's
		// point of view.
		if b.Turn == White {
			b.EPTarget = capSq + 8
		} else {
			b.EPTarget = capSq - 8
		}
		if mover := b.Turn.Other(); !b.Pieces[mover][Pawn].IsSet(int(b.EPTarget)) {
			return nil, fmt.Errorf("en passant target %s has no %s pawn", b.EPTarget, mover.Name())
		}
	}

	if len(parts) >= 5 {
		half, err := strconv.Atoi(parts[4])
		if err != nil || half < 0 {
			return nil, fmt.Errorf("invalid halfmove clock: %q", parts[4])
		}
		b.HalfMove = half
	}
	if len(parts) == 6 {
		full, err := strconv.Atoi(parts[5])
		if err != nil || full < 1 {
			return nil, fmt.Errorf("invalid full move number: %q", parts[5])
		}
		b.FullMove = full
	}

	return b, nil
}

// FEN renders the position as a FEN string.
func (b *Board) FEN() string {
	var sb strings.Builder

	for rankFromTop := 0; rankFromTop < 8; rankFromTop++ {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rankFromTop)
			color, kind, occupied := b.PieceAt(sq)
			if !occupied {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := kindLetters[kind]
			if color == White {
				letter = letter - 'a' + 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rankFromTop != 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.Turn.String())
	sb.WriteByte(' ')
	sb.WriteString(b.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(b.EPCaptureSquare().String())
	fmt.Fprintf(&sb, " %d %d", b.HalfMove, b.FullMove)

	return sb.String()
}
