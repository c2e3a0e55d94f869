package chessmg

import (
	"errors"
	"math/bits"
)

// Bitboard is a 64-bit set of squares. Bit 63 is a8 and bit 0 is h1:
// squares are enumerated from rank 8 down to rank 1, and within a rank
// from file a to file h in descending bit significance. A single set bit
// denotes one square; multiple set bits denote a set of squares.
type Bitboard uint64

// File and rank masks under the a8=MSB, h1=LSB mapping.
const (
	FileA Bitboard = 0x8080808080808080
	FileB Bitboard = 0x4040404040404040
	FileC Bitboard = 0x2020202020202020
	FileD Bitboard = 0x1010101010101010
	FileE Bitboard = 0x0808080808080808
	FileF Bitboard = 0x0404040404040404
	FileG Bitboard = 0x0202020202020202
	FileH Bitboard = 0x0101010101010101

	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = 0x000000000000FF00
	Rank3 Bitboard = 0x0000000000FF0000
	Rank4 Bitboard = 0x00000000FF000000
	Rank5 Bitboard = 0x000000FF00000000
	Rank6 Bitboard = 0x0000FF0000000000
	Rank7 Bitboard = 0x00FF000000000000
	Rank8 Bitboard = 0xFF00000000000000
)

// Direction identifies one of the eight single-square step directions.
type Direction uint8

const (
	DirNorth Direction = iota
	DirSouth
	DirEast
	DirWest
	DirNorthEast
	DirNorthWest
	DirSouthEast
	DirSouthWest
)

// North shifts every square one rank toward rank 8. Squares on rank 8
// fall off the board.
func (b Bitboard) North() Bitboard { return b << 8 }

// South shifts every square one rank toward rank 1.
func (b Bitboard) South() Bitboard { return b >> 8 }

// East shifts every square one file toward the h-file. Squares already on
// the h-file fall off rather than wrapping onto the next rank.
func (b Bitboard) East() Bitboard { return (b &^ FileH) >> 1 }

// West shifts every square one file toward the a-file.
func (b Bitboard) West() Bitboard { return (b &^ FileA) << 1 }

// NorthEast shifts one square diagonally up-right.
func (b Bitboard) NorthEast() Bitboard { return (b &^ FileH) << 7 }

// NorthWest shifts one square diagonally up-left.
func (b Bitboard) NorthWest() Bitboard { return (b &^ FileA) << 9 }

// SouthEast shifts one square diagonally down-right.
func (b Bitboard) SouthEast() Bitboard { return (b &^ FileH) >> 9 }

// SouthWest shifts one square diagonally down-left.
func (b Bitboard) SouthWest() Bitboard { return (b &^ FileA) >> 7 }

// Shift steps every square once in the given direction, dropping squares
// that would leave the board.
func (b Bitboard) Shift(d Direction) Bitboard {
	switch d {
	case DirNorth:
		return b.North()
	case DirSouth:
		return b.South()
	case DirEast:
		return b.East()
	case DirWest:
		return b.West()
	case DirNorthEast:
		return b.NorthEast()
	case DirNorthWest:
		return b.NorthWest()
	case DirSouthEast:
		return b.SouthEast()
	case DirSouthWest:
		return b.SouthWest()
	}
	return 0
}

// Count returns the number of set squares.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// Split decomposes the board into its single-square members, in LSB to
// MSB order (h1 toward a8).
func (b Bitboard) Split() []Bitboard {
	out := make([]Bitboard, 0, b.Count())
	for b != 0 {
		out = append(out, b&-b)
		b &= b - 1
	}
	return out
}

// popLSB removes the least significant set square and returns its index.
func popLSB(b *Bitboard) int {
	idx := bits.TrailingZeros64(uint64(*b))
	*b &= *b - 1
	return idx
}

// Square indexes one board square in [0, 63] under the same mapping as
// Bitboard (h1 = 0, a8 = 63). NoSquare marks the absence of a square and
// is distinct from every valid index.
type Square int

// NoSquare is the explicit "no square" value used for an empty en passant
// target and failed lookups.
const NoSquare Square = -1

// First- and eighth-rank square indexes, used by castling and validation.
const (
	sqH1 Square = iota
	sqG1
	sqF1
	sqE1
	sqD1
	sqC1
	sqB1
	sqA1
)

const (
	sqH8 Square = 56 + iota
	sqG8
	sqF8
	sqE8
	sqD8
	sqC8
	sqB8
	sqA8
)

// SquareAt builds a square from a zero-based file (a=0 .. h=7) and
// zero-based rank (rank 1 = 0 .. rank 8 = 7).
func SquareAt(file, rank int) Square { return Square(rank*8 + (7 - file)) }

// File returns the zero-based file of the square (a=0 .. h=7).
func (s Square) File() int { return 7 - int(s)%8 }

// Rank returns the zero-based rank of the square (rank 1 = 0).
func (s Square) Rank() int { return int(s) / 8 }

// Bitboard returns the single-square board for s, or 0 for NoSquare.
func (s Square) Bitboard() Bitboard {
	if s == NoSquare {
		return 0
	}
	return Bitboard(1) << uint(s)
}

// SquareFromBitboard returns the square of the lowest set bit of b, or
// NoSquare when b is empty.
func SquareFromBitboard(b Bitboard) Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// SquareFromString parses a two-character algebraic square ("a1".."h8").
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, errors.New("invalid square: must be two characters")
	}
	file := s[0]
	rank := s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, errors.New("invalid square: out of range")
	}
	return SquareAt(int(file-'a'), int(rank-'1')), nil
}

// String renders the square in algebraic notation; NoSquare renders "-".
func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}
