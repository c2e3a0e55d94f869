package chessmg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoard returns a board set up at the standard initial position.
func NewBoard() *Board {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return b
}

// EmptyBoard returns a board with no pieces and White to move. Use
// SetPiece to build arbitrary positions from it.
func EmptyBoard() *Board {
	b := &Board{enPassantSquare: NoSquare, fullmoveNumber: 1}
	b.zobristKey = b.ComputeZobrist()
	return b
}

func pieceFromFEN(ch byte) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	}
	return NoPiece
}

func fenFromPiece(p Piece) byte {
	letters := [7]byte{0, 'p', 'n', 'b', 'r', 'q', 'k'}
	ch := letters[p.Type()]
	if p.Color() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// ParseFEN parses a Forsyth-Edwards Notation string into a Board. All six
// fields are required. Strings that are malformed, or that describe a
// structurally impossible position, are rejected with an error prefixed
// "invalid FEN".
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, errors.New("invalid FEN: expected six space-separated fields")
	}
	b := &Board{enPassantSquare: NoSquare}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, errors.New("invalid FEN: board must describe eight ranks")
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		prevDigit := false
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				if prevDigit {
					return nil, errors.New("invalid FEN: consecutive digits in a rank")
				}
				file += int(ch - '0')
				prevDigit = true
				continue
			}
			prevDigit = false
			p := pieceFromFEN(ch)
			if p == NoPiece {
				return nil, fmt.Errorf("invalid FEN: unknown piece %q", ch)
			}
			if file > 7 {
				return nil, errors.New("invalid FEN: rank describes more than eight squares")
			}
			b.addPiece(SquareAt(file, rank), p)
			file++
		}
		if file != 8 {
			return nil, errors.New("invalid FEN: rank does not describe eight squares")
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, errors.New("invalid FEN: side to move must be w or b")
	}

	if fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			var right CastlingRights
			switch fields[2][j] {
			case 'K':
				right = CastlingWhiteK
			case 'Q':
				right = CastlingWhiteQ
			case 'k':
				right = CastlingBlackK
			case 'q':
				right = CastlingBlackQ
			default:
				return nil, errors.New("invalid FEN: unknown castling right")
			}
			if b.castlingRights&right != 0 {
				return nil, errors.New("invalid FEN: duplicate castling right")
			}
			b.castlingRights |= right
		}
	}

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, errors.New("invalid FEN: malformed en passant square")
		}
		b.enPassantSquare = sq
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return nil, errors.New("invalid FEN: malformed halfmove clock")
	}
	b.halfmoveClock = half

	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return nil, errors.New("invalid FEN: malformed fullmove number")
	}
	b.fullmoveNumber = full

	if err := b.validatePosition(); err != nil {
		return nil, err
	}
	b.zobristKey = b.ComputeZobrist()
	return b, nil
}

// validatePosition rejects positions that cannot arise in a game even
// though the FEN fields themselves parse: missing or duplicated kings,
// pawns on the back ranks, castling rights without the king and rook in
// place, or an en passant square not matching a double push.
func (b *Board) validatePosition() error {
	if b.kings[White].Count() != 1 || b.kings[Black].Count() != 1 {
		return errors.New("invalid FEN: each side must have exactly one king")
	}
	if (b.pawns[White]|b.pawns[Black])&(Rank1|Rank8) != 0 {
		return errors.New("invalid FEN: pawn on the first or last rank")
	}

	type rightCheck struct {
		right CastlingRights
		king  Square
		rook  Square
		kp    Piece
		rp    Piece
	}
	checks := [4]rightCheck{
		{CastlingWhiteK, sqE1, sqH1, WhiteKing, WhiteRook},
		{CastlingWhiteQ, sqE1, sqA1, WhiteKing, WhiteRook},
		{CastlingBlackK, sqE8, sqH8, BlackKing, BlackRook},
		{CastlingBlackQ, sqE8, sqA8, BlackKing, BlackRook},
	}
	for _, c := range checks {
		if b.castlingRights&c.right == 0 {
			continue
		}
		if b.pieces[c.king] != c.kp || b.pieces[c.rook] != c.rp {
			return errors.New("invalid FEN: castling right without king and rook in place")
		}
	}

	if ep := b.enPassantSquare; ep != NoSquare {
		if b.pieces[ep] != NoPiece {
			return errors.New("invalid FEN: en passant square is occupied")
		}
		if b.sideToMove == White {
			if ep.Rank() != 5 || b.pieces[ep-8] != BlackPawn {
				return errors.New("invalid FEN: en passant square without a matching double push")
			}
		} else {
			if ep.Rank() != 2 || b.pieces[ep+8] != WhitePawn {
				return errors.New("invalid FEN: en passant square without a matching double push")
			}
		}
	}
	return nil
}

// ToFEN renders the position in Forsyth-Edwards Notation. Parsing the
// result reproduces the board exactly.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[SquareAt(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(fenFromPiece(p))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if b.sideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(b.castlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(b.enPassantSquare.String())
	fmt.Fprintf(&sb, " %d %d", b.halfmoveClock, b.fullmoveNumber)
	return sb.String()
}
