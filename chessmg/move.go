package chessmg

import "errors"

// Move flags, stored in the packed move word.
const (
	MoveFlagNone      uint8 = 0
	MoveFlagCastle    uint8 = 1
	MoveFlagEnPassant uint8 = 2
)

// Move describes a single move together with a snapshot of the
// irreversible state of the position it was built for: castling rights,
// en passant square, the clocks and the Zobrist key. The snapshot lets
// UnmakeMove restore the board without a separate history stack. Moves
// are plain comparable values and can key a map, which PerftDivide uses.
type Move struct {
	// from | to<<6 | piece<<12 | captured<<16 | promotion<<20 | flag<<24.
	data uint32

	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
}

// NewMove builds a move for the given position. captured is the occupant
// of the target square, or the pawn removed beside it for en passant, and
// promotion is the piece a pawn turns into; both are NoPiece when not
// applicable.
func NewMove(b *Board, from, to Square, piece, captured, promotion Piece, flag uint8) Move {
	return Move{
		data: uint32(from) | uint32(to)<<6 | uint32(piece)<<12 |
			uint32(captured)<<16 | uint32(promotion)<<20 | uint32(flag)<<24,
		prevCastling:  b.castlingRights,
		prevEnPassant: b.enPassantSquare,
		prevHalfmove:  b.halfmoveClock,
		prevFullmove:  b.fullmoveNumber,
		prevZobrist:   b.zobristKey,
	}
}

// From returns the origin square.
func (m Move) From() Square { return Square(m.data & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square(m.data >> 6 & 0x3F) }

// MovedPiece returns the moving piece.
func (m Move) MovedPiece() Piece { return Piece(m.data >> 12 & 0xF) }

// CapturedPiece returns the captured piece, or NoPiece for quiet moves.
// For en passant it is the pawn removed beside the destination square.
func (m Move) CapturedPiece() Piece { return Piece(m.data >> 16 & 0xF) }

// PromotionPiece returns the piece a pawn promotes to, or NoPiece.
func (m Move) PromotionPiece() Piece { return Piece(m.data >> 20 & 0xF) }

// PromotionPieceType returns the promotion as a bare piece type.
func (m Move) PromotionPieceType() PieceType { return m.PromotionPiece().Type() }

// Flags returns the move kind flag.
func (m Move) Flags() uint8 { return uint8(m.data >> 24) }

// IsCapture reports whether the move takes a piece, en passant included.
func (m Move) IsCapture() bool { return m.CapturedPiece() != NoPiece }

// IsCastle reports whether the move castles.
func (m Move) IsCastle() bool { return m.Flags() == MoveFlagCastle }

// IsEnPassant reports whether the move captures en passant.
func (m Move) IsEnPassant() bool { return m.Flags() == MoveFlagEnPassant }

// String renders the move in long algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	switch m.PromotionPieceType() {
	case PieceTypeKnight:
		s += "n"
	case PieceTypeBishop:
		s += "b"
	case PieceTypeRook:
		s += "r"
	case PieceTypeQueen:
		s += "q"
	}
	return s
}

// ParseMove interprets a long algebraic move string such as "e2e4" or
// "e7e8q" against the position and returns the matching legal move.
func ParseMove(b *Board, s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, errors.New("invalid move: must be four or five characters")
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return Move{}, err
	}
	promo := PieceTypeNone
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = PieceTypeKnight
		case 'b':
			promo = PieceTypeBishop
		case 'r':
			promo = PieceTypeRook
		case 'q':
			promo = PieceTypeQueen
		default:
			return Move{}, errors.New("invalid move: unknown promotion piece")
		}
	}
	for _, m := range b.GenerateMoves() {
		if m.From() == from && m.To() == to && m.PromotionPieceType() == promo {
			return m, nil
		}
	}
	return Move{}, errors.New("invalid move: not legal in this position")
}
