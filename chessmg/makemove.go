package chessmg

// castleMask[sq] lists the castling rights that survive a piece moving
// from or to sq. A single table lookup covers king moves, rook moves and
// rook captures alike.
var castleMask [64]CastlingRights

func init() {
	all := CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
	for sq := range castleMask {
		castleMask[sq] = all
	}
	castleMask[sqE1] &^= CastlingWhiteK | CastlingWhiteQ
	castleMask[sqH1] &^= CastlingWhiteK
	castleMask[sqA1] &^= CastlingWhiteQ
	castleMask[sqE8] &^= CastlingBlackK | CastlingBlackQ
	castleMask[sqH8] &^= CastlingBlackK
	castleMask[sqA8] &^= CastlingBlackQ
}

// castleRookSquares returns the rook's origin and destination for a
// castling move, derived from the king's destination square.
func castleRookSquares(kingTo Square) (rookFrom, rookTo Square) {
	if kingTo.File() == 6 {
		return kingTo - 1, kingTo + 1
	}
	return kingTo + 2, kingTo - 1
}

// MakeMove applies the move to the board and reports whether it left the
// mover's king safe. When it returns false the move was illegal and the
// board has been rolled back, so the position is unchanged either way the
// caller cares about. Pseudo-legal input is expected; castling moves
// produced by the generator are already fully validated.
func (b *Board) MakeMove(m Move) bool {
	from, to := m.From(), m.To()
	piece := m.MovedPiece()
	us := b.sideToMove

	// Whatever happens next, the old en passant window closes.
	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}

	if m.IsEnPassant() {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		b.removePiece(capSq)
	} else if m.CapturedPiece() != NoPiece {
		b.removePiece(to)
	}

	b.MovePiece(from, to)
	if promo := m.PromotionPiece(); promo != NoPiece {
		b.removePiece(to)
		b.addPiece(to, promo)
	}
	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(to)
		b.MovePiece(rookFrom, rookTo)
	}

	b.zobristKey ^= zobristCastle[b.castlingRights]
	b.castlingRights &= castleMask[from] & castleMask[to]
	b.zobristKey ^= zobristCastle[b.castlingRights]

	if piece.Type() == PieceTypePawn && (to-from == 16 || from-to == 16) {
		ep := (from + to) / 2
		b.enPassantSquare = ep
		b.zobristKey ^= zobristEnPassant[ep.File()]
	}

	if piece.Type() == PieceTypePawn || m.CapturedPiece() != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}

	b.sideToMove = us.Other()
	b.zobristKey ^= zobristSide

	if b.InCheck(us) {
		b.UnmakeMove(m)
		return false
	}
	return true
}

// UnmakeMove reverses the most recently made move, restoring the
// snapshot the move carries.
func (b *Board) UnmakeMove(m Move) {
	from, to := m.From(), m.To()
	mover := b.sideToMove.Other()

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(to)
		b.MovePiece(rookTo, rookFrom)
	}
	if m.PromotionPiece() != NoPiece {
		b.removePiece(to)
		b.addPiece(to, m.MovedPiece())
	}
	b.MovePiece(to, from)
	if captured := m.CapturedPiece(); captured != NoPiece {
		capSq := to
		if m.IsEnPassant() {
			capSq = to - 8
			if mover == Black {
				capSq = to + 8
			}
		}
		b.addPiece(capSq, captured)
	}

	b.sideToMove = mover
	b.castlingRights = m.prevCastling
	b.enPassantSquare = m.prevEnPassant
	b.halfmoveClock = m.prevHalfmove
	b.fullmoveNumber = m.prevFullmove
	b.zobristKey = m.prevZobrist
}
