package movegen

import "math/bits"

// PseudoLegalMoves returns all pseudo-legal moves (allocates a new slice).
func (b *Board) PseudoLegalMoves() []Move { return b.PseudoLegalMovesInto(make([]Move, 0, 128)) }

// PseudoLegalMovesInto appends all pseudo-legal moves for the side to move
// into dst and returns it. dst is truncated (len=0) and reused when capacity
// suffices. Pseudo-legal obeys piece movement rules and blockers; castling
// requires rights, an empty path and the rook on its home square, but no
// attack checks. King safety is left entirely to the legality filter.
//
// Generation order is deterministic: pawns, knights, bishops, rooks, queens,
// king, each by ascending origin square.
func (b *Board) PseudoLegalMovesInto(dst []Move) []Move {
	moves := dst[:0]
	side := b.stm
	us := int(side)
	them := 1 - us

	ownOcc := b.occupied[us]
	oppOcc := b.occupied[them]
	allOcc := ownOcc | oppOcc

	// Pawns
	pawns := b.byType[us][PieceTypePawn]
	for pawns != 0 {
		from := popLSB(&pawns)
		fromSq := Square(from)
		movedPiece := b.squares[from]

		if side == White {
			one := from + 8
			if one < 64 && ((allOcc>>uint(one))&1) == 0 {
				if one/8 == 7 {
					moves = append(moves,
						NewMove(fromSq, Square(one), movedPiece, NoPiece, WhiteQueen, FlagNone),
						NewMove(fromSq, Square(one), movedPiece, NoPiece, WhiteRook, FlagNone),
						NewMove(fromSq, Square(one), movedPiece, NoPiece, WhiteBishop, FlagNone),
						NewMove(fromSq, Square(one), movedPiece, NoPiece, WhiteKnight, FlagNone),
					)
				} else {
					moves = append(moves, NewMove(fromSq, Square(one), movedPiece, NoPiece, NoPiece, FlagNone))
					if from/8 == 1 {
						two := from + 16
						if ((allOcc >> uint(two)) & 1) == 0 {
							moves = append(moves, NewMove(fromSq, Square(two), movedPiece, NoPiece, NoPiece, FlagDoublePush))
						}
					}
				}
			}

			caps := pawnCaptures[White][from]
			capTargets := caps & oppOcc
			for capTargets != 0 {
				to := popLSB(&capTargets)
				toSq := Square(to)
				capPiece := b.squares[to]
				if to/8 == 7 {
					moves = append(moves,
						NewMove(fromSq, toSq, movedPiece, capPiece, WhiteQueen, FlagNone),
						NewMove(fromSq, toSq, movedPiece, capPiece, WhiteRook, FlagNone),
						NewMove(fromSq, toSq, movedPiece, capPiece, WhiteBishop, FlagNone),
						NewMove(fromSq, toSq, movedPiece, capPiece, WhiteKnight, FlagNone),
					)
				} else {
					moves = append(moves, NewMove(fromSq, toSq, movedPiece, capPiece, NoPiece, FlagNone))
				}
			}
			if b.epSquare != NoSquare && caps&(uint64(1)<<uint(b.epSquare)) != 0 {
				moves = append(moves, NewMove(fromSq, b.epSquare, movedPiece, BlackPawn, NoPiece, FlagEnPassant))
			}
		} else {
			one := from - 8
			if one >= 0 && ((allOcc>>uint(one))&1) == 0 {
				if one/8 == 0 {
					moves = append(moves,
						NewMove(fromSq, Square(one), movedPiece, NoPiece, BlackQueen, FlagNone),
						NewMove(fromSq, Square(one), movedPiece, NoPiece, BlackRook, FlagNone),
						NewMove(fromSq, Square(one), movedPiece, NoPiece, BlackBishop, FlagNone),
						NewMove(fromSq, Square(one), movedPiece, NoPiece, BlackKnight, FlagNone),
					)
				} else {
					moves = append(moves, NewMove(fromSq, Square(one), movedPiece, NoPiece, NoPiece, FlagNone))
					if from/8 == 6 {
						two := from - 16
						if ((allOcc >> uint(two)) & 1) == 0 {
							moves = append(moves, NewMove(fromSq, Square(two), movedPiece, NoPiece, NoPiece, FlagDoublePush))
						}
					}
				}
			}

			caps := pawnCaptures[Black][from]
			capTargets := caps & oppOcc
			for capTargets != 0 {
				to := popLSB(&capTargets)
				toSq := Square(to)
				capPiece := b.squares[to]
				if to/8 == 0 {
					moves = append(moves,
						NewMove(fromSq, toSq, movedPiece, capPiece, BlackQueen, FlagNone),
						NewMove(fromSq, toSq, movedPiece, capPiece, BlackRook, FlagNone),
						NewMove(fromSq, toSq, movedPiece, capPiece, BlackBishop, FlagNone),
						NewMove(fromSq, toSq, movedPiece, capPiece, BlackKnight, FlagNone),
					)
				} else {
					moves = append(moves, NewMove(fromSq, toSq, movedPiece, capPiece, NoPiece, FlagNone))
				}
			}
			if b.epSquare != NoSquare && caps&(uint64(1)<<uint(b.epSquare)) != 0 {
				moves = append(moves, NewMove(fromSq, b.epSquare, movedPiece, WhitePawn, NoPiece, FlagEnPassant))
			}
		}
	}

	// Knights
	knights := b.byType[us][PieceTypeKnight]
	for knights != 0 {
		from := popLSB(&knights)
		moves = b.appendMaskMoves(moves, Square(from), knightMasks[from]&^ownOcc, oppOcc)
	}

	// Bishops
	bishops := b.byType[us][PieceTypeBishop]
	for bishops != 0 {
		from := popLSB(&bishops)
		moves = b.appendMaskMoves(moves, Square(from), bishopAttacks(from, allOcc)&^ownOcc, oppOcc)
	}

	// Rooks
	rooks := b.byType[us][PieceTypeRook]
	for rooks != 0 {
		from := popLSB(&rooks)
		moves = b.appendMaskMoves(moves, Square(from), rookAttacks(from, allOcc)&^ownOcc, oppOcc)
	}

	// Queens
	queens := b.byType[us][PieceTypeQueen]
	for queens != 0 {
		from := popLSB(&queens)
		targets := (rookAttacks(from, allOcc) | bishopAttacks(from, allOcc)) &^ ownOcc
		moves = b.appendMaskMoves(moves, Square(from), targets, oppOcc)
	}

	// King
	kingBB := b.byType[us][PieceTypeKing]
	if kingBB != 0 {
		from := bits.TrailingZeros64(kingBB)
		moves = b.appendMaskMoves(moves, Square(from), kingMasks[from]&^ownOcc, oppOcc)

		// Castling candidates: rights, empty path, rook on its home square.
		// Through-check conditions are applied by the legality filter.
		if side == White && from == 4 {
			if b.castling&CastlingWhiteK != 0 &&
				b.squares[5] == NoPiece && b.squares[6] == NoPiece && b.squares[7] == WhiteRook {
				moves = append(moves, NewMove(4, 6, WhiteKing, NoPiece, NoPiece, FlagCastleKing))
			}
			if b.castling&CastlingWhiteQ != 0 &&
				b.squares[1] == NoPiece && b.squares[2] == NoPiece && b.squares[3] == NoPiece && b.squares[0] == WhiteRook {
				moves = append(moves, NewMove(4, 2, WhiteKing, NoPiece, NoPiece, FlagCastleQueen))
			}
		} else if side == Black && from == 60 {
			if b.castling&CastlingBlackK != 0 &&
				b.squares[61] == NoPiece && b.squares[62] == NoPiece && b.squares[63] == BlackRook {
				moves = append(moves, NewMove(60, 62, BlackKing, NoPiece, NoPiece, FlagCastleKing))
			}
			if b.castling&CastlingBlackQ != 0 &&
				b.squares[57] == NoPiece && b.squares[58] == NoPiece && b.squares[59] == NoPiece && b.squares[56] == BlackRook {
				moves = append(moves, NewMove(60, 58, BlackKing, NoPiece, NoPiece, FlagCastleQueen))
			}
		}
	}

	return moves
}

// appendMaskMoves expands a target bitboard for the piece standing on from
// into moves, reading captured pieces from the mailbox.
func (b *Board) appendMaskMoves(moves []Move, from Square, targets, oppOcc uint64) []Move {
	movedPiece := b.squares[int(from)]
	for targets != 0 {
		to := popLSB(&targets)
		var cap Piece
		if ((oppOcc >> uint(to)) & 1) != 0 {
			cap = b.squares[to]
		}
		moves = append(moves, NewMove(from, Square(to), movedPiece, cap, NoPiece, FlagNone))
	}
	return moves
}

// castleLegal checks the castling conditions that depend on attacks in the
// pre-move position: the king may not castle out of, through, or into check.
func (b *Board) castleLegal(m Move) bool {
	us := colorOf(m.MovedPiece())
	them := 1 - us
	if b.InCheck(us) {
		return false
	}
	var transit, landing Square
	if us == White {
		if m.Flag() == FlagCastleKing {
			transit, landing = 5, 6
		} else {
			transit, landing = 3, 2
		}
	} else {
		if m.Flag() == FlagCastleKing {
			transit, landing = 61, 62
		} else {
			transit, landing = 59, 58
		}
	}
	return !b.IsSquareAttacked(transit, them) && !b.IsSquareAttacked(landing, them)
}

// LegalMoves returns all legal moves for the side to move (allocates).
func (b *Board) LegalMoves() []Move { return b.LegalMovesInto(make([]Move, 0, 128)) }

// LegalMovesInto appends all legal moves for the side to move into dst and
// returns it. Each pseudo-legal candidate passes the castling pre-checks and
// then a make/unmake probe; a move is legal exactly when MakeMove accepts it.
func (b *Board) LegalMovesInto(dst []Move) []Move {
	var buf [maxMoves]Move
	pseudo := b.PseudoLegalMovesInto(buf[:0])

	moves := dst[:0]
	for _, m := range pseudo {
		if m.IsCastle() && !b.castleLegal(m) {
			continue
		}
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		b.UnmakeMove(m, st)
		moves = append(moves, m)
	}
	return moves
}
