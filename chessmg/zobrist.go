package chessmg

import "math/rand"

// Zobrist tables, generated once from a fixed seed so hashes are stable
// across runs. Pieces index the outer table directly, so it spans the
// full tag range including the unused slots.
var (
	zobristPiece     [15][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x5EED))
	pieces := [12]Piece{
		WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
		BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
	}
	for _, p := range pieces {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rng.Uint64()
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

// ComputeZobrist hashes the position from scratch. The result always
// matches the incrementally maintained key; Validate checks exactly that.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if p := b.pieces[sq]; p != NoPiece {
			key ^= zobristPiece[p][sq]
		}
	}
	key ^= zobristCastle[b.castlingRights]
	if b.enPassantSquare != NoSquare {
		key ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	if b.sideToMove == Black {
		key ^= zobristSide
	}
	return key
}
