package movegen

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	move          Move
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	rookFrom      Square // castling undo
	rookTo        Square // castling undo
}

// Move returns the move this undo record belongs to.
func (st MoveState) Move() Move { return st.move }

// MakeMove applies a move to the board. It returns ok=false if the move would
// leave the mover's king attacked, restoring the original position exactly.
// The move must be pseudo-legal for the current position; castling through
// check is not detected here and must be filtered beforehand.
func (b *Board) MakeMove(m Move) (ok bool, st MoveState) {
	st.move = m
	st.prevCastling = b.castling
	st.prevEnPassant = b.epSquare
	st.prevHalfmove = b.halfmove
	st.prevFullmove = b.fullmove
	st.prevZobrist = b.key
	st.rookFrom, st.rookTo = NoSquare, NoSquare
	st.captured = NoPiece

	from := m.From()
	to := m.To()
	moved := m.MovedPiece()
	captured := m.CapturedPiece()
	promo := m.PromotionPiece()
	flag := m.Flag()

	// Clear the previous en passant target from the key.
	if b.epSquare != NoSquare {
		b.key ^= hashEnPassant(b.epSquare)
	}
	b.epSquare = NoSquare

	us := int(b.stm)
	them := 1 - us
	fromBB := bb(from)
	toBB := bb(to)

	// Capture removal. The en passant victim sits behind the target square.
	if flag == FlagEnPassant {
		var capSq Square
		if b.stm == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		st.captured = captured
		capBB := bb(capSq)
		b.squares[int(capSq)] = NoPiece
		b.occupied[them] &^= capBB
		b.byType[them][PieceTypePawn] &^= capBB
		b.key ^= hashPiece(captured, capSq)
	} else if captured != NoPiece {
		st.captured = captured
		b.squares[int(to)] = NoPiece
		b.occupied[them] &^= toBB
		b.byType[them][captured&7] &^= toBB
		b.key ^= hashPiece(captured, to)
	}

	// Move the piece, or replace the pawn with the promoted piece.
	if promo != NoPiece {
		b.squares[int(from)] = NoPiece
		b.occupied[us] &^= fromBB
		b.byType[us][PieceTypePawn] &^= fromBB
		b.key ^= hashPiece(moved, from)

		b.squares[int(to)] = promo
		b.occupied[us] |= toBB
		b.byType[us][promo&7] |= toBB
		b.key ^= hashPiece(promo, to)
	} else {
		b.squares[int(from)] = NoPiece
		b.squares[int(to)] = moved
		b.occupied[us] ^= fromBB | toBB
		b.byType[us][moved&7] ^= fromBB | toBB
		b.key ^= hashPiece(moved, from)
		b.key ^= hashPiece(moved, to)
	}

	// Castling moves the rook alongside the king.
	if flag == FlagCastleKing || flag == FlagCastleQueen {
		rook := WhiteRook
		if b.stm == White {
			if flag == FlagCastleKing {
				st.rookFrom, st.rookTo = 7, 5 // h1 -> f1
			} else {
				st.rookFrom, st.rookTo = 0, 3 // a1 -> d1
			}
		} else {
			rook = BlackRook
			if flag == FlagCastleKing {
				st.rookFrom, st.rookTo = 63, 61 // h8 -> f8
			} else {
				st.rookFrom, st.rookTo = 56, 59 // a8 -> d8
			}
		}
		rb := bb(st.rookFrom)
		nb := bb(st.rookTo)
		b.squares[int(st.rookFrom)] = NoPiece
		b.squares[int(st.rookTo)] = rook
		b.occupied[us] ^= rb | nb
		b.byType[us][PieceTypeRook] ^= rb | nb
		b.key ^= hashPiece(rook, st.rookFrom)
		b.key ^= hashPiece(rook, st.rookTo)
	}

	// Castling rights: king moves clear both wings, rook moves from a home
	// square clear that wing, and capturing a rook on its home square clears
	// the owner's right for that wing.
	newCR := b.castling
	switch moved {
	case WhiteKing:
		newCR &^= CastlingWhiteK | CastlingWhiteQ
	case BlackKing:
		newCR &^= CastlingBlackK | CastlingBlackQ
	case WhiteRook:
		if from == 0 {
			newCR &^= CastlingWhiteQ
		} else if from == 7 {
			newCR &^= CastlingWhiteK
		}
	case BlackRook:
		if from == 56 {
			newCR &^= CastlingBlackQ
		} else if from == 63 {
			newCR &^= CastlingBlackK
		}
	}
	if st.captured != NoPiece && st.captured.Type() == PieceTypeRook {
		switch to {
		case 0:
			newCR &^= CastlingWhiteQ
		case 7:
			newCR &^= CastlingWhiteK
		case 56:
			newCR &^= CastlingBlackQ
		case 63:
			newCR &^= CastlingBlackK
		}
	}
	if newCR != b.castling {
		b.key ^= hashCastling(b.castling)
		b.key ^= hashCastling(newCR)
		b.castling = newCR
	}

	// A double pawn push exposes the skipped square to en passant.
	if flag == FlagDoublePush {
		var ep Square
		if b.stm == White {
			ep = from + 8
		} else {
			ep = from - 8
		}
		b.epSquare = ep
		b.key ^= hashEnPassant(ep)
	}

	// Toggle side to move before the legality check so Unmake can rely on
	// the toggled state.
	b.stm = 1 - b.stm
	b.key ^= hashSideToMove()

	// Reject a move that leaves the mover's king attacked. The full attack
	// query runs unconditionally; this is the legality probe every filtered
	// move goes through.
	moverColor := 1 - b.stm
	ks := b.KingSquare(moverColor)
	if ks == NoSquare || b.attackedWithOcc(int(ks), b.stm, b.occupied[0]|b.occupied[1]) {
		b.UnmakeMove(m, st)
		return false, st
	}

	if moved.Type() == PieceTypePawn || st.captured != NoPiece {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if moverColor == Black {
		b.fullmove++
	}

	return true, st
}

// UnmakeMove undoes a previously made move, restoring the position bitwise,
// including the Zobrist key.
func (b *Board) UnmakeMove(m Move, st MoveState) {
	b.stm = 1 - b.stm

	from := m.From()
	to := m.To()
	moved := m.MovedPiece()
	promo := m.PromotionPiece()
	flag := m.Flag()

	us := int(b.stm)
	them := 1 - us

	// Walk the rook back first on castling moves.
	if st.rookFrom != NoSquare {
		rook := WhiteRook
		if moved&8 != 0 {
			rook = BlackRook
		}
		rb := bb(st.rookFrom)
		nb := bb(st.rookTo)
		b.squares[int(st.rookTo)] = NoPiece
		b.squares[int(st.rookFrom)] = rook
		b.occupied[us] ^= rb | nb
		b.byType[us][PieceTypeRook] ^= rb | nb
	}

	fromBB := bb(from)
	toBB := bb(to)
	b.squares[int(to)] = NoPiece
	if promo != NoPiece {
		pawn := WhitePawn
		if moved&8 != 0 {
			pawn = BlackPawn
		}
		b.squares[int(from)] = pawn
		b.occupied[us] ^= fromBB | toBB
		b.byType[us][promo&7] &^= toBB
		b.byType[us][PieceTypePawn] |= fromBB
	} else {
		b.squares[int(from)] = moved
		b.occupied[us] ^= fromBB | toBB
		b.byType[us][moved&7] ^= fromBB | toBB
	}

	if st.captured != NoPiece {
		if flag == FlagEnPassant {
			var capSq Square
			if moved&8 == 0 {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
			capBB := bb(capSq)
			b.squares[int(capSq)] = st.captured
			b.occupied[them] |= capBB
			b.byType[them][PieceTypePawn] |= capBB
		} else {
			b.squares[int(to)] = st.captured
			b.occupied[them] |= toBB
			b.byType[them][st.captured&7] |= toBB
		}
	}

	b.castling = st.prevCastling
	b.epSquare = st.prevEnPassant
	b.halfmove = st.prevHalfmove
	b.fullmove = st.prevFullmove

	// Exact key restoration; incremental XORs are not replayed on undo.
	b.key = st.prevZobrist
}
