package movegen

import "fmt"

// Move encodes a chess move in a 32-bit value.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	movePromoteShift = 20 // 4 bits
	moveFlagShift    = 24 // 4 bits
)

// MoveFlag marks special moves. A move carries at most one flag; captures
// and promotions are indicated by the captured and promotion piece fields.
type MoveFlag uint8

const (
	FlagNone MoveFlag = iota
	FlagDoublePush
	FlagEnPassant
	FlagCastleKing
	FlagCastleQueen
)

// maxMoves bounds the number of moves in any reachable position. 218 is the
// known record; 256 leaves headroom for fixed buffers.
const maxMoves = 256

// NewMove constructs a Move value from components.
func NewMove(from, to Square, piece, captured, promotion Piece, flag MoveFlag) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		(uint32(flag&0xF) << moveFlagShift)
	return Move(m)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// MovedPiece returns the piece being moved.
func (m Move) MovedPiece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// CapturedPiece returns the captured piece, or NoPiece if none. For en
// passant this is the opposing pawn even though the target square is empty.
func (m Move) CapturedPiece() Piece { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }

// PromotionPiece returns the promotion piece, or NoPiece if not a promotion.
func (m Move) PromotionPiece() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }

// Flag returns the special move flag.
func (m Move) Flag() MoveFlag { return MoveFlag((uint32(m) >> moveFlagShift) & 0xF) }

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool { return m.CapturedPiece() != NoPiece }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.PromotionPiece() != NoPiece }

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsDoublePush reports whether the move is a two-square pawn advance.
func (m Move) IsDoublePush() bool { return m.Flag() == FlagDoublePush }

// IsCastle reports whether the move is a castling move on either wing.
func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == FlagCastleKing || f == FlagCastleQueen
}

// String renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		switch promo.Type() {
		case PieceTypeKnight:
			s += "n"
		case PieceTypeBishop:
			s += "b"
		case PieceTypeRook:
			s += "r"
		case PieceTypeQueen:
			s += "q"
		}
	}
	return s
}

// ParseMove resolves a move in coordinate notation ("e2e4", "e7e8q") against
// the legal moves of the position, so the returned Move carries the correct
// captured piece and special-move flag.
func (b *Board) ParseMove(text string) (Move, error) {
	for _, m := range b.LegalMoves() {
		if m.String() == text {
			return m, nil
		}
	}
	return 0, fmt.Errorf("no legal move %q in position %s", text, b.ToFEN())
}

// orderKey maps the move to an integer whose natural ordering is
// (from, to, promotion piece type). Used for stable divide output.
func (m Move) orderKey() int {
	return int(m.From())<<10 | int(m.To())<<4 | int(m.PromotionPiece().Type())
}
