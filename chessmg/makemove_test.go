package chessmg_test

import (
	"testing"

	"chess-movegen/chessmg"
)

func TestMakeUnmakeRoundTrip(t *testing.T) {
	fens := []string{
		chessmg.FENStartPos,
		fenKiwipete,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
	}
	for _, fen := range fens {
		b := mustParse(t, fen)
		before := *b
		for _, m := range b.GenerateMoves() {
			if !b.MakeMove(m) {
				t.Fatalf("%s: legal move %s rejected", fen, m)
			}
			if !b.Validate() {
				t.Fatalf("%s: board inconsistent after making %s", fen, m)
			}
			b.UnmakeMove(m)
			if *b != before {
				t.Fatalf("%s: state not restored after %s\nbefore: %s\nafter:  %s",
					fen, m, before.ToFEN(), b.ToFEN())
			}
			if !b.Validate() {
				t.Fatalf("%s: board inconsistent after unmaking %s", fen, m)
			}
		}
	}
}

func TestMakeMoveCastlingPlacements(t *testing.T) {
	cases := []struct {
		name     string
		side     string
		move     string
		king     string
		rook     string
		vacated  []string
		remained chessmg.CastlingRights
	}{
		{"white-kingside", "w", "e1g1", "g1", "f1", []string{"e1", "h1"},
			chessmg.CastlingBlackK | chessmg.CastlingBlackQ},
		{"white-queenside", "w", "e1c1", "c1", "d1", []string{"e1", "a1", "b1"},
			chessmg.CastlingBlackK | chessmg.CastlingBlackQ},
		{"black-kingside", "b", "e8g8", "g8", "f8", []string{"e8", "h8"},
			chessmg.CastlingWhiteK | chessmg.CastlingWhiteQ},
		{"black-queenside", "b", "e8c8", "c8", "d8", []string{"e8", "a8", "b8"},
			chessmg.CastlingWhiteK | chessmg.CastlingWhiteQ},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R "+tc.side+" KQkq - 0 1")
			before := *b
			us := b.SideToMove()

			m, err := chessmg.ParseMove(b, tc.move)
			if err != nil {
				t.Fatalf("ParseMove(%s): %v", tc.move, err)
			}
			if !b.MakeMove(m) {
				t.Fatalf("castle %s rejected", tc.move)
			}
			if got := b.PieceAt(mustSquare(t, tc.king)); got.Type() != chessmg.PieceTypeKing {
				t.Fatalf("king not on %s after %s, found %v", tc.king, tc.move, got)
			}
			if got := b.PieceAt(mustSquare(t, tc.rook)); got.Type() != chessmg.PieceTypeRook || got.Color() != us {
				t.Fatalf("rook not on %s after %s, found %v", tc.rook, tc.move, got)
			}
			for _, sq := range tc.vacated {
				if got := b.PieceAt(mustSquare(t, sq)); got != chessmg.NoPiece {
					t.Fatalf("%s still occupied by %v after %s", sq, got, tc.move)
				}
			}
			if b.Castling() != tc.remained {
				t.Fatalf("castling rights after %s: %s, want %s",
					tc.move, b.Castling(), tc.remained)
			}

			b.UnmakeMove(m)
			if *b != before {
				t.Fatalf("castle %s did not unmake cleanly", tc.move)
			}
		})
	}
}

func TestCastlingRightsClearing(t *testing.T) {
	full := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"

	b := mustParse(t, full)
	makeMove(t, b, "a1a2")
	if got := b.Castling(); got != chessmg.CastlingWhiteK|chessmg.CastlingBlackK|chessmg.CastlingBlackQ {
		t.Fatalf("after a1a2: rights %s, want Kkq", got)
	}

	b = mustParse(t, full)
	makeMove(t, b, "e1e2")
	if got := b.Castling(); got != chessmg.CastlingBlackK|chessmg.CastlingBlackQ {
		t.Fatalf("after e1e2: rights %s, want kq", got)
	}

	// Capturing a rook on its home square removes the opponent's right.
	b = mustParse(t, full)
	makeMove(t, b, "h1h8")
	if got := b.Castling(); got != chessmg.CastlingWhiteQ|chessmg.CastlingBlackQ {
		t.Fatalf("after h1xh8: rights %s, want Qq", got)
	}
}

func makeMove(t *testing.T, b *chessmg.Board, ms string) {
	t.Helper()
	m, err := chessmg.ParseMove(b, ms)
	if err != nil {
		t.Fatalf("ParseMove(%s): %v", ms, err)
	}
	if !b.MakeMove(m) {
		t.Fatalf("MakeMove(%s) rejected a legal move", ms)
	}
}

func TestPromotionMakeUnmake(t *testing.T) {
	b := mustParse(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	before := *b

	m, err := chessmg.ParseMove(b, "a7b8q")
	if err != nil {
		t.Fatalf("ParseMove(a7b8q): %v", err)
	}
	if !b.MakeMove(m) {
		t.Fatalf("capture promotion rejected")
	}
	if got := b.PieceAt(mustSquare(t, "b8")); got != chessmg.WhiteQueen {
		t.Fatalf("b8 holds %v after promotion, want the new queen", got)
	}
	if got := b.PieceAt(mustSquare(t, "a7")); got != chessmg.NoPiece {
		t.Fatalf("a7 still occupied after promotion")
	}
	if b.Bitboards(chessmg.White).Pawns != 0 {
		t.Fatalf("promoted pawn still present in the pawn set")
	}

	b.UnmakeMove(m)
	if *b != before {
		t.Fatalf("promotion did not unmake cleanly\nbefore: %s\nafter:  %s",
			before.ToFEN(), b.ToFEN())
	}
	if got := b.PieceAt(mustSquare(t, "b8")); got != chessmg.BlackKnight {
		t.Fatalf("captured knight not restored on b8, found %v", got)
	}
}

func TestMoveClocks(t *testing.T) {
	b := chessmg.NewBoard()
	steps := []struct {
		move     string
		halfmove int
		fullmove int
	}{
		{"g1f3", 1, 1},
		{"g8f6", 2, 2},
		{"e2e4", 0, 2},
		{"b8c6", 1, 3},
	}
	for _, s := range steps {
		makeMove(t, b, s.move)
		if b.HalfmoveClock() != s.halfmove || b.FullmoveNumber() != s.fullmove {
			t.Fatalf("after %s: clocks %d/%d, want %d/%d",
				s.move, b.HalfmoveClock(), b.FullmoveNumber(), s.halfmove, s.fullmove)
		}
	}

	// A capture resets the halfmove clock too.
	b = mustParse(t, fenLucena)
	makeMove(t, b, "c1a1")
	makeMove(t, b, "a2a1")
	if b.HalfmoveClock() != 0 {
		t.Fatalf("capture did not reset the halfmove clock: %d", b.HalfmoveClock())
	}
}

func TestMakeMoveRejectsSelfCheck(t *testing.T) {
	b := mustParse(t, "3rk3/8/8/8/8/8/3B4/3K4 w - - 0 1")
	before := *b

	m := chessmg.NewMove(b,
		mustSquare(t, "d2"), mustSquare(t, "c3"),
		chessmg.WhiteBishop, chessmg.NoPiece, chessmg.NoPiece, chessmg.MoveFlagNone)
	if b.MakeMove(m) {
		t.Fatalf("moving the pinned bishop must be rejected")
	}
	if *b != before {
		t.Fatalf("rejected move left the board modified\nbefore: %s\nafter:  %s",
			before.ToFEN(), b.ToFEN())
	}
}

func TestZobristTransposition(t *testing.T) {
	play := func(moves ...string) *chessmg.Board {
		b := chessmg.NewBoard()
		for _, ms := range moves {
			makeMove(t, b, ms)
			if b.Hash() != b.ComputeZobrist() {
				t.Fatalf("incremental hash diverged after %s", ms)
			}
		}
		return b
	}

	b1 := play("e2e3", "d7d6", "d2d3")
	b2 := play("d2d3", "d7d6", "e2e3")
	if b1.Hash() != b2.Hash() {
		t.Fatalf("transposed move orders hash differently:\n%s\n%s", b1.ToFEN(), b2.ToFEN())
	}
	if b1.ToFEN() != b2.ToFEN() {
		t.Fatalf("transposed move orders reached different positions")
	}
}

func TestZobristComponents(t *testing.T) {
	withEP := mustParse(t, fenKingsPawn)
	withoutEP := mustParse(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if withEP.Hash() == withoutEP.Hash() {
		t.Fatalf("en passant availability must change the hash")
	}

	white := mustParse(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	black := mustParse(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if white.Hash() == black.Hash() {
		t.Fatalf("side to move must change the hash")
	}

	allRights := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	noRights := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	if allRights.Hash() == noRights.Hash() {
		t.Fatalf("castling rights must change the hash")
	}
}
