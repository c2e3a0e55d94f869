package chessmg

// Piece identifies a colored piece with a single tag. Black pieces carry
// bit 3, so p&7 yields the colorless type and p&8 selects the side.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is the colorless piece kind.
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

// Type returns the colorless kind of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece reports White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// PieceFromType combines a side and a colorless kind into a Piece.
func PieceFromType(c Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	p := Piece(pt)
	if c == Black {
		p |= 8
	}
	return p
}

// Color is the side of a piece or player.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

// CastlingRights is a bit set of the four castling permissions.
type CastlingRights uint8

const (
	// White king-side (short) castling.
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling.
	CastlingWhiteQ
	// Black king-side castling.
	CastlingBlackK
	// Black queen-side castling.
	CastlingBlackQ
)

// String renders the rights in FEN form ("KQkq" subset, or "-").
func (cr CastlingRights) String() string {
	if cr == 0 {
		return "-"
	}
	buf := make([]byte, 0, 4)
	if cr&CastlingWhiteK != 0 {
		buf = append(buf, 'K')
	}
	if cr&CastlingWhiteQ != 0 {
		buf = append(buf, 'Q')
	}
	if cr&CastlingBlackK != 0 {
		buf = append(buf, 'k')
	}
	if cr&CastlingBlackQ != 0 {
		buf = append(buf, 'q')
	}
	return string(buf)
}

// Bitboards is a copy of one side's per-piece occupancy.
type Bitboards struct {
	Pawns   Bitboard
	Knights Bitboard
	Bishops Bitboard
	Rooks   Bitboard
	Queens  Bitboard
	Kings   Bitboard
	All     Bitboard
}

// Board holds a full chess position: the twelve per-color piece bitboards,
// derived occupancy and mailbox caches, and the game-state fields. The
// struct contains no pointers, so assigning a Board value copies the whole
// position.
type Board struct {
	// Per-piece bitboards, indexed by color (0 = White, 1 = Black).
	pawns   [2]Bitboard
	knights [2]Bitboard
	bishops [2]Bitboard
	rooks   [2]Bitboard
	queens  [2]Bitboard
	kings   [2]Bitboard

	// Union of one side's piece bitboards, kept in sync with them.
	occupancy [2]Bitboard

	// Mailbox mirror of the bitboards: the piece on each square.
	pieces [64]Piece

	sideToMove     Color
	castlingRights CastlingRights

	// En passant target square, or NoSquare. Set only for the single ply
	// following a double pawn push.
	enPassantSquare Square

	// Half-moves since the last capture or pawn move.
	halfmoveClock int

	// Full-move number, incremented after Black's move. Starts at 1.
	fullmoveNumber int

	// Incrementally maintained Zobrist key for the position.
	zobristKey uint64
}

// SideToMove reports which side plays next.
func (b *Board) SideToMove() Color { return b.sideToMove }

// Castling returns the current castling rights.
func (b *Board) Castling() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the en passant target square, or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// HalfmoveClock returns the half-move count since the last capture or
// pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full-move counter.
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// Hash returns the position's Zobrist key.
func (b *Board) Hash() uint64 { return b.zobristKey }

// PieceAt returns the piece occupying the square, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[int(sq)] }

// AllOccupancy returns the union of every piece bitboard.
func (b *Board) AllOccupancy() Bitboard { return b.occupancy[White] | b.occupancy[Black] }

// ColorOccupancy returns the union of one side's piece bitboards.
func (b *Board) ColorOccupancy(c Color) Bitboard { return b.occupancy[c] }

// Bitboards returns a copy of one side's per-piece bitboards.
func (b *Board) Bitboards(c Color) Bitboards {
	ci := int(c)
	return Bitboards{
		Pawns:   b.pawns[ci],
		Knights: b.knights[ci],
		Bishops: b.bishops[ci],
		Rooks:   b.rooks[ci],
		Queens:  b.queens[ci],
		Kings:   b.kings[ci],
		All:     b.occupancy[ci],
	}
}

// pieceSet returns a pointer to the bitboard holding pieces like p.
// p must not be NoPiece.
func (b *Board) pieceSet(p Piece) *Bitboard {
	ci := int(p.Color())
	switch p.Type() {
	case PieceTypePawn:
		return &b.pawns[ci]
	case PieceTypeKnight:
		return &b.knights[ci]
	case PieceTypeBishop:
		return &b.bishops[ci]
	case PieceTypeRook:
		return &b.rooks[ci]
	case PieceTypeQueen:
		return &b.queens[ci]
	default:
		return &b.kings[ci]
	}
}

// addPiece places a piece on an empty square, updating the bitboards,
// occupancy, mailbox and Zobrist key.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	bit := sq.Bitboard()
	b.pieces[int(sq)] = p
	b.occupancy[p.Color()] |= bit
	*b.pieceSet(p) |= bit
	b.zobristKey ^= zobristPiece[p][int(sq)]
}

// removePiece clears the square and returns the piece it held.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[int(sq)]
	if p == NoPiece {
		return NoPiece
	}
	bit := sq.Bitboard()
	b.pieces[int(sq)] = NoPiece
	b.occupancy[p.Color()] &^= bit
	*b.pieceSet(p) &^= bit
	b.zobristKey ^= zobristPiece[p][int(sq)]
	return p
}

// SetPiece puts a piece on a square, replacing any occupant, and keeps
// all derived state consistent. Intended for position setup.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes whatever occupies the square.
func (b *Board) ClearSquare(sq Square) { b.removePiece(sq) }

// MovePiece relocates the piece on from to the empty square to.
func (b *Board) MovePiece(from, to Square) {
	p := b.pieces[int(from)]
	if p == NoPiece {
		return
	}
	bits := from.Bitboard() | to.Bitboard()
	b.pieces[int(from)] = NoPiece
	b.pieces[int(to)] = p
	b.occupancy[p.Color()] ^= bits
	*b.pieceSet(p) ^= bits
	b.zobristKey ^= zobristPiece[p][int(from)] ^ zobristPiece[p][int(to)]
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (b *Board) HasLegalMoves() bool {
	var buf [64]Move
	return len(b.GenerateMovesInto(buf[:0])) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// Validate cross-checks the mailbox against the piece bitboards, the
// occupancy caches, piece disjointness and the Zobrist key. It reports
// false on any inconsistency.
func (b *Board) Validate() bool {
	var occ [2]Bitboard
	var sets [2][7]Bitboard
	for sq := 0; sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		bit := Square(sq).Bitboard()
		occ[p.Color()] |= bit
		sets[p.Color()][p.Type()] |= bit
	}
	if occ != b.occupancy {
		return false
	}
	for ci := 0; ci < 2; ci++ {
		if sets[ci][PieceTypePawn] != b.pawns[ci] ||
			sets[ci][PieceTypeKnight] != b.knights[ci] ||
			sets[ci][PieceTypeBishop] != b.bishops[ci] ||
			sets[ci][PieceTypeRook] != b.rooks[ci] ||
			sets[ci][PieceTypeQueen] != b.queens[ci] ||
			sets[ci][PieceTypeKing] != b.kings[ci] {
			return false
		}
	}
	// The twelve bitboards must be pairwise disjoint. The mailbox walk
	// above can only set one bit per square, so it suffices to compare
	// the union's population with the per-square count.
	all := occ[0] | occ[1]
	count := 0
	for ci := 0; ci < 2; ci++ {
		for pt := 1; pt <= 6; pt++ {
			count += sets[ci][pt].Count()
		}
	}
	if count != all.Count() {
		return false
	}
	return b.zobristKey == b.ComputeZobrist()
}
