package chessmg

import "strings"

// Unicode figurines indexed by piece type.
var (
	whiteGlyphs = [7]rune{' ', '♙', '♘', '♗', '♖', '♕', '♔'}
	blackGlyphs = [7]rune{' ', '♟', '♞', '♝', '♜', '♛', '♚'}
)

// String renders the board as a framed diagram with Unicode figurines,
// rank 8 at the top and a file legend underneath.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  ┌───┬───┬───┬───┬───┬───┬───┬───┐\n")
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteString(" │")
		for file := 0; file < 8; file++ {
			p := b.pieces[SquareAt(file, rank)]
			sb.WriteByte(' ')
			switch {
			case p == NoPiece:
				sb.WriteByte(' ')
			case p.Color() == White:
				sb.WriteRune(whiteGlyphs[p.Type()])
			default:
				sb.WriteRune(blackGlyphs[p.Type()])
			}
			sb.WriteString(" │")
		}
		sb.WriteByte('\n')
		if rank > 0 {
			sb.WriteString("  ├───┼───┼───┼───┼───┼───┼───┼───┤\n")
		}
	}
	sb.WriteString("  └───┴───┴───┴───┴───┴───┴───┴───┘\n")
	sb.WriteString("    a   b   c   d   e   f   g   h  \n")
	return sb.String()
}
