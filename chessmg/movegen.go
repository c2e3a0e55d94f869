package chessmg

// Precomputed attack tables for the leaper pieces, filled at startup by
// composing single-square shifts so the edge masking is inherited from
// the shift methods.
var (
	knightMoves [64]Bitboard
	kingMoves   [64]Bitboard
	pawnAttacks [2][64]Bitboard
)

func init() {
	for sq := Square(0); sq < 64; sq++ {
		bit := sq.Bitboard()
		knightMoves[sq] = bit.North().NorthEast() | bit.North().NorthWest() |
			bit.South().SouthEast() | bit.South().SouthWest() |
			bit.East().NorthEast() | bit.East().SouthEast() |
			bit.West().NorthWest() | bit.West().SouthWest()
		kingMoves[sq] = bit.North() | bit.South() | bit.East() | bit.West() |
			bit.NorthEast() | bit.NorthWest() | bit.SouthEast() | bit.SouthWest()
		pawnAttacks[White][sq] = bit.NorthEast() | bit.NorthWest()
		pawnAttacks[Black][sq] = bit.SouthEast() | bit.SouthWest()
	}
}

// Ray direction sets for the sliding pieces.
var (
	straightDirs = [...]Direction{DirNorth, DirSouth, DirEast, DirWest}
	diagonalDirs = [...]Direction{DirNorthEast, DirNorthWest, DirSouthEast, DirSouthWest}
	allDirs      = [...]Direction{
		DirNorth, DirSouth, DirEast, DirWest,
		DirNorthEast, DirNorthWest, DirSouthEast, DirSouthWest,
	}
)

// slidingAttacks walks each ray one step at a time, stopping at the first
// occupied square, which is included in the attack set.
func slidingAttacks(sq Square, dirs []Direction, occ Bitboard) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		for step := sq.Bitboard().Shift(d); step != 0; step = step.Shift(d) {
			attacks |= step
			if occ&step != 0 {
				break
			}
		}
	}
	return attacks
}

// PawnAttackSet returns the squares attacked by a set of pawns of the
// given color, independent of any board.
func PawnAttackSet(c Color, pawns Bitboard) Bitboard {
	if c == White {
		return pawns.NorthEast() | pawns.NorthWest()
	}
	return pawns.SouthEast() | pawns.SouthWest()
}

// PawnAttacks returns the squares attacked by side c's pawns.
func (b *Board) PawnAttacks(c Color) Bitboard { return PawnAttackSet(c, b.pawns[c]) }

// AttackSquares returns every square attacked by side c, including those
// occupied by c's own pieces.
func (b *Board) AttackSquares(c Color) Bitboard {
	occ := b.AllOccupancy()

	attacks := PawnAttackSet(c, b.pawns[c])
	for set := b.knights[c]; set != 0; {
		attacks |= knightMoves[popLSB(&set)]
	}
	for set := b.kings[c]; set != 0; {
		attacks |= kingMoves[popLSB(&set)]
	}
	for set := b.bishops[c] | b.queens[c]; set != 0; {
		attacks |= slidingAttacks(Square(popLSB(&set)), diagonalDirs[:], occ)
	}
	for set := b.rooks[c] | b.queens[c]; set != 0; {
		attacks |= slidingAttacks(Square(popLSB(&set)), straightDirs[:], occ)
	}
	return attacks
}

// IsSquareAttacked reports whether any piece of side by attacks sq. It
// looks outward from sq instead of accumulating full attack sets, so it
// is the cheap form used on the make-move path.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	if pawnAttacks[by.Other()][sq]&b.pawns[by] != 0 {
		return true
	}
	if knightMoves[sq]&b.knights[by] != 0 {
		return true
	}
	if kingMoves[sq]&b.kings[by] != 0 {
		return true
	}
	occ := b.AllOccupancy()
	if slidingAttacks(sq, diagonalDirs[:], occ)&(b.bishops[by]|b.queens[by]) != 0 {
		return true
	}
	return slidingAttacks(sq, straightDirs[:], occ)&(b.rooks[by]|b.queens[by]) != 0
}

// InCheck reports whether side c's king is attacked.
func (b *Board) InCheck(c Color) bool {
	king := SquareFromBitboard(b.kings[c])
	if king == NoSquare {
		return false
	}
	return b.IsSquareAttacked(king, c.Other())
}

// genKind selects which subset of moves a generator pass emits.
type genKind uint8

const (
	genAll genKind = iota
	genCaptures
	genQuiets
)

// targetMask returns the destination filter for the given subset.
func (b *Board) targetMask(kind genKind) Bitboard {
	switch kind {
	case genCaptures:
		return b.occupancy[b.sideToMove.Other()]
	case genQuiets:
		return ^b.AllOccupancy()
	default:
		return ^b.occupancy[b.sideToMove]
	}
}

// GeneratePseudoMovesInto appends every pseudo-legal move except castling
// for the side to move and returns the extended slice. Moves may leave
// the mover's king attacked; MakeMove rejects those.
func (b *Board) GeneratePseudoMovesInto(moves []Move) []Move {
	moves = b.appendPawnMoves(moves, genAll)
	moves = b.appendKnightMoves(moves, genAll)
	moves = b.appendSlidingMoves(moves, genAll)
	return b.appendKingMoves(moves, genAll)
}

// GeneratePseudoMoves returns the pseudo-legal moves in a fresh slice.
func (b *Board) GeneratePseudoMoves() []Move {
	return b.GeneratePseudoMovesInto(make([]Move, 0, 128))
}

// GenerateMovesInto appends every legal move for the side to move and
// returns the extended slice. Each pseudo-legal candidate is applied to
// the board and kept only when the king survives, so no extra allocation
// happens beyond the slice the caller provides.
func (b *Board) GenerateMovesInto(moves []Move) []Move {
	start := len(moves)
	moves = b.GeneratePseudoMovesInto(moves)
	moves = b.appendCastlingMoves(moves)
	legal := moves[:start]
	for _, m := range moves[start:] {
		if b.MakeMove(m) {
			b.UnmakeMove(m)
			legal = append(legal, m)
		}
	}
	return legal
}

// GenerateMoves returns the legal moves in a freshly allocated slice.
func (b *Board) GenerateMoves() []Move {
	return b.GenerateMovesInto(make([]Move, 0, 128))
}

// GenerateLegalMoves is GenerateMoves under its conventional name.
func (b *Board) GenerateLegalMoves() []Move { return b.GenerateMoves() }

// GenerateCapturesInto appends the pseudo-legal captures, including
// capture promotions and en passant.
func (b *Board) GenerateCapturesInto(moves []Move) []Move {
	moves = b.appendPawnMoves(moves, genCaptures)
	moves = b.appendKnightMoves(moves, genCaptures)
	moves = b.appendSlidingMoves(moves, genCaptures)
	return b.appendKingMoves(moves, genCaptures)
}

// GenerateCaptures returns the pseudo-legal captures in a fresh slice.
func (b *Board) GenerateCaptures() []Move {
	return b.GenerateCapturesInto(make([]Move, 0, 128))
}

// GenerateQuietsInto appends the pseudo-legal non-captures. Castling
// counts as quiet and is included here, already fully validated.
func (b *Board) GenerateQuietsInto(moves []Move) []Move {
	moves = b.appendPawnMoves(moves, genQuiets)
	moves = b.appendKnightMoves(moves, genQuiets)
	moves = b.appendSlidingMoves(moves, genQuiets)
	moves = b.appendKingMoves(moves, genQuiets)
	return b.appendCastlingMoves(moves)
}

// GenerateQuiets returns the pseudo-legal non-captures in a fresh slice.
func (b *Board) GenerateQuiets() []Move {
	return b.GenerateQuietsInto(make([]Move, 0, 128))
}

// appendPawnMoves decomposes the side's pawns into shifted target sets:
// single pushes, double pushes, and the two capture diagonals, with en
// passant handled off the attack tables. Pushes or captures that reach
// the last rank expand into the four promotions.
func (b *Board) appendPawnMoves(moves []Move, kind genKind) []Move {
	us := b.sideToMove
	pawns := b.pawns[us]
	occ := b.AllOccupancy()
	theirOcc := b.occupancy[us.Other()]
	piece := PieceFromType(us, PieceTypePawn)

	var singles, doubles, eastCaps, westCaps, promoRank Bitboard
	var pushDelta, eastDelta, westDelta Square
	if us == White {
		singles = pawns.North() &^ occ
		doubles = (singles & Rank3).North() &^ occ
		eastCaps = pawns.NorthEast() & theirOcc
		westCaps = pawns.NorthWest() & theirOcc
		pushDelta, eastDelta, westDelta = 8, 7, 9
		promoRank = Rank8
	} else {
		singles = pawns.South() &^ occ
		doubles = (singles & Rank6).South() &^ occ
		eastCaps = pawns.SouthEast() & theirOcc
		westCaps = pawns.SouthWest() & theirOcc
		pushDelta, eastDelta, westDelta = -8, -9, -7
		promoRank = Rank1
	}

	if kind != genCaptures {
		for set := singles; set != 0; {
			to := Square(popLSB(&set))
			from := to - pushDelta
			if to.Bitboard()&promoRank != 0 {
				moves = b.appendPromotions(moves, from, to, piece, NoPiece)
			} else {
				moves = append(moves, NewMove(b, from, to, piece, NoPiece, NoPiece, MoveFlagNone))
			}
		}
		for set := doubles; set != 0; {
			to := Square(popLSB(&set))
			moves = append(moves, NewMove(b, to-2*pushDelta, to, piece, NoPiece, NoPiece, MoveFlagNone))
		}
	}
	if kind != genQuiets {
		for set := eastCaps; set != 0; {
			to := Square(popLSB(&set))
			from := to - eastDelta
			if to.Bitboard()&promoRank != 0 {
				moves = b.appendPromotions(moves, from, to, piece, b.pieces[to])
			} else {
				moves = append(moves, NewMove(b, from, to, piece, b.pieces[to], NoPiece, MoveFlagNone))
			}
		}
		for set := westCaps; set != 0; {
			to := Square(popLSB(&set))
			from := to - westDelta
			if to.Bitboard()&promoRank != 0 {
				moves = b.appendPromotions(moves, from, to, piece, b.pieces[to])
			} else {
				moves = append(moves, NewMove(b, from, to, piece, b.pieces[to], NoPiece, MoveFlagNone))
			}
		}
		moves = b.appendEnPassant(moves)
	}
	return moves
}

func (b *Board) appendPromotions(moves []Move, from, to Square, piece, captured Piece) []Move {
	us := piece.Color()
	for _, pt := range [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight} {
		moves = append(moves, NewMove(b, from, to, piece, captured, PieceFromType(us, pt), MoveFlagNone))
	}
	return moves
}

// appendEnPassant finds the pawns able to capture on the en passant
// square by asking which squares a pawn of the opposite color standing on
// the target would attack.
func (b *Board) appendEnPassant(moves []Move) []Move {
	ep := b.enPassantSquare
	if ep == NoSquare {
		return moves
	}
	us := b.sideToMove
	piece := PieceFromType(us, PieceTypePawn)
	captured := PieceFromType(us.Other(), PieceTypePawn)
	for set := pawnAttacks[us.Other()][ep] & b.pawns[us]; set != 0; {
		from := Square(popLSB(&set))
		moves = append(moves, NewMove(b, from, ep, piece, captured, NoPiece, MoveFlagEnPassant))
	}
	return moves
}

func (b *Board) appendKnightMoves(moves []Move, kind genKind) []Move {
	us := b.sideToMove
	piece := PieceFromType(us, PieceTypeKnight)
	mask := b.targetMask(kind)
	for set := b.knights[us]; set != 0; {
		from := Square(popLSB(&set))
		for targets := knightMoves[from] & mask; targets != 0; {
			to := Square(popLSB(&targets))
			moves = append(moves, NewMove(b, from, to, piece, b.pieces[to], NoPiece, MoveFlagNone))
		}
	}
	return moves
}

func (b *Board) appendKingMoves(moves []Move, kind genKind) []Move {
	us := b.sideToMove
	piece := PieceFromType(us, PieceTypeKing)
	mask := b.targetMask(kind)
	for set := b.kings[us]; set != 0; {
		from := Square(popLSB(&set))
		for targets := kingMoves[from] & mask; targets != 0; {
			to := Square(popLSB(&targets))
			moves = append(moves, NewMove(b, from, to, piece, b.pieces[to], NoPiece, MoveFlagNone))
		}
	}
	return moves
}

func (b *Board) appendSlidingMoves(moves []Move, kind genKind) []Move {
	us := b.sideToMove
	moves = b.appendSliderSet(moves, b.bishops[us], PieceTypeBishop, diagonalDirs[:], kind)
	moves = b.appendSliderSet(moves, b.rooks[us], PieceTypeRook, straightDirs[:], kind)
	return b.appendSliderSet(moves, b.queens[us], PieceTypeQueen, allDirs[:], kind)
}

func (b *Board) appendSliderSet(moves []Move, set Bitboard, pt PieceType, dirs []Direction, kind genKind) []Move {
	us := b.sideToMove
	piece := PieceFromType(us, pt)
	occ := b.AllOccupancy()
	mask := b.targetMask(kind)
	for set != 0 {
		from := Square(popLSB(&set))
		for targets := slidingAttacks(from, dirs, occ) & mask; targets != 0; {
			to := Square(popLSB(&targets))
			moves = append(moves, NewMove(b, from, to, piece, b.pieces[to], NoPiece, MoveFlagNone))
		}
	}
	return moves
}

// castleSpec captures one castling option: the right bit, the squares the
// king and rook start on, the squares between them that must be empty,
// and the squares the king crosses, origin included, that must not be
// attacked.
type castleSpec struct {
	right    CastlingRights
	kingFrom Square
	kingTo   Square
	rookFrom Square
	empty    Bitboard
	kingPath Bitboard
}

var castleSpecs = [2][2]castleSpec{
	White: {
		{
			right: CastlingWhiteK, kingFrom: sqE1, kingTo: sqG1, rookFrom: sqH1,
			empty:    sqF1.Bitboard() | sqG1.Bitboard(),
			kingPath: sqE1.Bitboard() | sqF1.Bitboard() | sqG1.Bitboard(),
		},
		{
			right: CastlingWhiteQ, kingFrom: sqE1, kingTo: sqC1, rookFrom: sqA1,
			empty:    sqD1.Bitboard() | sqC1.Bitboard() | sqB1.Bitboard(),
			kingPath: sqE1.Bitboard() | sqD1.Bitboard() | sqC1.Bitboard(),
		},
	},
	Black: {
		{
			right: CastlingBlackK, kingFrom: sqE8, kingTo: sqG8, rookFrom: sqH8,
			empty:    sqF8.Bitboard() | sqG8.Bitboard(),
			kingPath: sqE8.Bitboard() | sqF8.Bitboard() | sqG8.Bitboard(),
		},
		{
			right: CastlingBlackQ, kingFrom: sqE8, kingTo: sqC8, rookFrom: sqA8,
			empty:    sqD8.Bitboard() | sqC8.Bitboard() | sqB8.Bitboard(),
			kingPath: sqE8.Bitboard() | sqD8.Bitboard() | sqC8.Bitboard(),
		},
	},
}

// appendCastlingMoves emits the castling moves that are fully legal:
// right intact, path clear, king and rook in place, and no square the
// king touches attacked. The opponent's attack set is computed once and
// only when a candidate survives the cheap checks. Note the rook's path
// may pass through an attacked square; only the king's path matters, so
// queen-side castling stays legal with b1 or b8 covered.
func (b *Board) appendCastlingMoves(moves []Move) []Move {
	us := b.sideToMove
	if b.castlingRights&((CastlingWhiteK|CastlingWhiteQ)<<(2*us)) == 0 {
		return moves
	}
	occ := b.AllOccupancy()
	king := PieceFromType(us, PieceTypeKing)
	rook := PieceFromType(us, PieceTypeRook)
	var danger Bitboard
	haveDanger := false
	for i := range castleSpecs[us] {
		cs := &castleSpecs[us][i]
		if b.castlingRights&cs.right == 0 {
			continue
		}
		if occ&cs.empty != 0 {
			continue
		}
		if b.pieces[cs.kingFrom] != king || b.pieces[cs.rookFrom] != rook {
			continue
		}
		if !haveDanger {
			danger = b.AttackSquares(us.Other())
			haveDanger = true
		}
		if danger&cs.kingPath != 0 {
			continue
		}
		moves = append(moves, NewMove(b, cs.kingFrom, cs.kingTo, king, NoPiece, NoPiece, MoveFlagCastle))
	}
	return moves
}
