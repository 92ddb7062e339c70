package movegen

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseError describes a FEN parsing failure, naming the field that failed.
type ParseError struct {
	Field string // "placement", "side", "castling", "en-passant", "halfmove", "fullmove"
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid FEN %s field: %s", e.Field, e.Msg)
}

func fenErr(field, format string, args ...any) error {
	return &ParseError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// charFromPiece converts a Piece constant to its FEN character.
func charFromPiece(p Piece) byte {
	const white = "?PNBRQK"
	const black = "?pnbrqk"
	if p&8 != 0 {
		return black[p&7]
	}
	return white[p&7]
}

// ParseFEN parses a FEN string and returns a new Board set up to that
// position. Errors are *ParseError values naming the offending field. The
// clock fields are optional and default to 0 and 1.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fenErr("placement", "expected at least 4 fields, got %d", len(fields))
	}

	b := &Board{epSquare: NoSquare, fullmove: 1}

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenErr("placement", "expected 8 ranks, got %d", len(ranks))
	}
	var kings, pawns, total [2]int
	for i, rankStr := range ranks {
		rank := 7 - i // FEN lists rank 8 first
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == NoPiece {
				return nil, fenErr("placement", "unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, fenErr("placement", "rank %d overflows 8 files", rank+1)
			}
			ci := int(colorOf(p))
			total[ci]++
			switch p.Type() {
			case PieceTypeKing:
				kings[ci]++
			case PieceTypePawn:
				pawns[ci]++
				if rank == 0 || rank == 7 {
					return nil, fenErr("placement", "pawn on rank %d", rank+1)
				}
			}
			sq := Square(rank*8 + file)
			bit := bb(sq)
			b.squares[int(sq)] = p
			b.occupied[ci] |= bit
			b.byType[ci][p&7] |= bit
			file++
		}
		if file != 8 {
			return nil, fenErr("placement", "rank %d has %d files, want 8", rank+1, file)
		}
	}
	for ci, name := range [2]string{"white", "black"} {
		if kings[ci] != 1 {
			return nil, fenErr("placement", "%s has %d kings", name, kings[ci])
		}
		if pawns[ci] > 8 {
			return nil, fenErr("placement", "%s has %d pawns", name, pawns[ci])
		}
		if total[ci] > 16 {
			return nil, fenErr("placement", "%s has %d pieces", name, total[ci])
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		b.stm = White
	case "b":
		b.stm = Black
	default:
		return nil, fenErr("side", "want 'w' or 'b', got %q", fields[1])
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.castling |= CastlingWhiteK
			case 'Q':
				b.castling |= CastlingWhiteQ
			case 'k':
				b.castling |= CastlingBlackK
			case 'q':
				b.castling |= CastlingBlackQ
			default:
				return nil, fenErr("castling", "unrecognized character %q", ch)
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return nil, fenErr("en-passant", "malformed square %q", fields[3])
		}
		fileCh, rankCh := fields[3][0], fields[3][1]
		if fileCh < 'a' || fileCh > 'h' {
			return nil, fenErr("en-passant", "file out of range in %q", fields[3])
		}
		if rankCh != '3' && rankCh != '6' {
			return nil, fenErr("en-passant", "target rank must be 3 or 6 in %q", fields[3])
		}
		b.epSquare = Square(int(rankCh-'1')*8 + int(fileCh-'a'))
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fenErr("halfmove", "want a non-negative integer, got %q", fields[4])
		}
		b.halfmove = n
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fenErr("fullmove", "want a positive integer, got %q", fields[5])
		}
		b.fullmove = n
	}

	b.key = b.ComputeZobrist()
	return b, nil
}

// ToFEN produces the FEN string for the board's current state. It is the
// exact inverse of ParseFEN for any position ParseFEN accepts.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank*8+file]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	if b.stm == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	if b.castling == 0 {
		sb.WriteByte('-')
	} else {
		if b.castling&CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if b.castling&CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if b.castling&CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if b.castling&CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')

	sb.WriteString(b.epSquare.String())
	sb.WriteByte(' ')

	sb.WriteString(strconv.Itoa(b.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmove))
	return sb.String()
}
