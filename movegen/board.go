package movegen

import "math/bits"

// Piece identifies a colored piece on the board.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is the colorless representation of a piece, used for table indexing.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side owning the piece. NoPiece reports White.
func (p Piece) Color() Color { return colorOf(p) }

// PieceFromType combines a side and a colorless type into a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	p := Piece(pt)
	if color == Black {
		p |= 8
	}
	return p
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// Square represents a board position (0-63, a1=0, h8=63).
type Square int

const NoSquare Square = -1

// File returns the square's file in [0..7].
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns the square's rank in [0..7].
func (sq Square) Rank() int { return int(sq) / 8 }

// String renders the square in algebraic form, e.g. "e4".
func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// Board holds a full chess position: bitboards, a mailbox mirror, and the
// game-state fields that affect move legality.
type Board struct {
	// byType[color][type] for types 1..6; index 0 is unused.
	byType [2][7]uint64

	// occupied[color] is the union of that side's piece bitboards.
	occupied [2]uint64

	// squares mirrors the bitboards square by square (NoPiece when empty).
	squares [64]Piece

	stm      Color
	castling CastlingRights
	epSquare Square // en passant target square, NoSquare when none
	halfmove int
	fullmove int

	// Incrementally maintained Zobrist key.
	key uint64
}

// NewBoard returns an empty board with no pieces, White to move.
func NewBoard() *Board {
	b := &Board{epSquare: NoSquare, fullmove: 1}
	b.key = b.ComputeZobrist()
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.stm }

// SetSideToMove updates the side to play. Normal move making toggles this
// automatically; this is for position setup.
func (b *Board) SetSideToMove(c Color) {
	if b.stm == c {
		return
	}
	b.stm = c
	b.key ^= hashSideToMove()
}

// CastlingRights returns the current castling-rights bitmask.
func (b *Board) CastlingRights() CastlingRights { return b.castling }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.epSquare }

// HalfmoveClock returns half-moves since the last capture or pawn advance.
func (b *Board) HalfmoveClock() int { return b.halfmove }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmove }

// Hash returns the current Zobrist key.
func (b *Board) Hash() uint64 { return b.key }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.squares[int(sq)] }

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.occupied[0] | b.occupied[1] }

// ColorOccupancy returns the occupancy bitboard for the given color.
func (b *Board) ColorOccupancy(c Color) uint64 { return b.occupied[int(c)] }

// TypeBB returns the bitboard of the given side's pieces of the given type.
func (b *Board) TypeBB(c Color, pt PieceType) uint64 { return b.byType[int(c)][int(pt)] }

// KingSquare returns the square of the given side's king, or NoSquare if absent.
func (b *Board) KingSquare(c Color) Square {
	kbb := b.byType[int(c)][PieceTypeKing]
	if kbb == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(kbb))
}

// colorOf returns the color of a piece. NoPiece is treated as White.
func colorOf(p Piece) Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// addPiece places a piece on an empty square and keeps bitboards, occupancy
// and Zobrist in sync.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	ci := int(colorOf(p))
	bit := bb(sq)
	b.squares[int(sq)] = p
	b.occupied[ci] |= bit
	b.byType[ci][p&7] |= bit
	b.key ^= hashPiece(p, sq)
}

// removePiece removes the piece from a square and returns it.
func (b *Board) removePiece(sq Square) Piece {
	p := b.squares[int(sq)]
	if p == NoPiece {
		return NoPiece
	}
	ci := int(colorOf(p))
	bit := bb(sq)
	b.squares[int(sq)] = NoPiece
	b.occupied[ci] &^= bit
	b.byType[ci][p&7] &^= bit
	b.key ^= hashPiece(p, sq)
	return p
}

// SetPiece sets a piece on a square, replacing any existing piece.
// Intended for position setup and tests.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { _ = b.removePiece(sq) }

// SetCastlingRights replaces the castling-rights bitmask. Position setup only.
func (b *Board) SetCastlingRights(cr CastlingRights) {
	if cr == b.castling {
		return
	}
	b.key ^= hashCastling(b.castling)
	b.key ^= hashCastling(cr)
	b.castling = cr
}

// SetEnPassantSquare replaces the en-passant target square. Position setup only.
func (b *Board) SetEnPassantSquare(sq Square) {
	if b.epSquare != NoSquare {
		b.key ^= hashEnPassant(b.epSquare)
	}
	b.epSquare = sq
	if sq != NoSquare {
		b.key ^= hashEnPassant(sq)
	}
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (b *Board) HasLegalMoves() bool {
	var buf [maxMoves]Move
	pseudo := b.PseudoLegalMovesInto(buf[:0])
	for _, m := range pseudo {
		if m.IsCastle() && !b.castleLegal(m) {
			continue
		}
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			return true
		}
	}
	return false
}

// Validate checks internal consistency between the mailbox, the per-type
// bitboards, the occupancy unions, and the incremental Zobrist key.
func (b *Board) Validate() bool {
	var byType [2][7]uint64
	var occ [2]uint64
	for sq := 0; sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece {
			continue
		}
		ci := int(colorOf(p))
		bit := uint64(1) << uint(sq)
		occ[ci] |= bit
		byType[ci][p&7] |= bit
	}
	if occ != b.occupied {
		return false
	}
	if byType != b.byType {
		return false
	}
	return b.key == b.ComputeZobrist()
}
