package chessmg_test

import (
	"testing"

	"chess-movegen/chessmg"
)

func TestPerftInitialPosition(t *testing.T) {
	b := chessmg.NewBoard()
	expected := []uint64{1, 20, 400, 8902, 197281}
	for depth, want := range expected {
		if got := b.Perft(depth); got != want {
			t.Fatalf("perft(%d): got %d want %d", depth, got, want)
		}
	}
	if testing.Short() {
		t.Skip("skipping depth 5 in short mode")
	}
	if got := b.Perft(5); got != 4865609 {
		t.Fatalf("perft(5): got %d want %d", got, 4865609)
	}
}

func TestPerftKnownPositions(t *testing.T) {
	cases := []struct {
		name   string
		fen    string
		counts []uint64 // counts[i] is the expected perft(i+1)
	}{
		{
			name:   "kiwipete",
			fen:    fenKiwipete,
			counts: []uint64{48, 2039, 97862},
		},
		{
			name:   "rook-endgame",
			fen:    "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			counts: []uint64{14, 191, 2812, 43238},
		},
		{
			name:   "promotion-storm",
			fen:    "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			counts: []uint64{6, 264, 9467},
		},
		{
			name:   "talkchess",
			fen:    "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			counts: []uint64{44, 1486, 62379},
		},
		{
			name:   "symmetric-middlegame",
			fen:    "r4rk1/1pp1qppp/p1np1n2/2b1p1b1/2B1P1B1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
			counts: []uint64{46, 2079, 89890},
		},
		{
			name:   "en-passant-pair",
			fen:    "k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
			counts: []uint64{5, 19},
		},
		{
			name:   "underpromotion",
			fen:    "1n5k/P7/8/8/8/8/8/7K w - - 0 1",
			counts: []uint64{11},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, tc.fen)
			for i, want := range tc.counts {
				depth := i + 1
				if got := b.Perft(depth); got != want {
					t.Logf("position:\n%s", b)
					for _, m := range b.GenerateMoves() {
						t.Logf("  root move %s", m)
					}
					t.Fatalf("%s perft(%d): got %d want %d", tc.fen, depth, got, want)
				}
			}
			if got := b.ToFEN(); got != tc.fen {
				t.Fatalf("perft left the board modified: %s", got)
			}
		})
	}
}

func TestPerftDepthZero(t *testing.T) {
	for _, fen := range []string{chessmg.FENStartPos, fenKiwipete, fenLucena} {
		b := mustParse(t, fen)
		if got := b.Perft(0); got != 1 {
			t.Fatalf("%s: perft(0) = %d, want 1", fen, got)
		}
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	for _, fen := range []string{chessmg.FENStartPos, fenKiwipete} {
		b := mustParse(t, fen)
		for depth := 1; depth <= 3; depth++ {
			counts := b.PerftDivide(depth)
			if len(counts) != len(b.GenerateMoves()) {
				t.Fatalf("%s: divide(%d) has %d entries, want one per root move",
					fen, depth, len(counts))
			}
			var sum uint64
			for _, n := range counts {
				sum += n
			}
			if want := b.Perft(depth); sum != want {
				t.Fatalf("%s: divide(%d) sums to %d, perft says %d", fen, depth, sum, want)
			}
		}
	}
}

func TestPerftDivideInitialDepthOne(t *testing.T) {
	b := chessmg.NewBoard()
	counts := b.PerftDivide(1)
	if len(counts) != 20 {
		t.Fatalf("divide(1): got %d entries, want 20", len(counts))
	}
	for m, n := range counts {
		if n != 1 {
			t.Fatalf("divide(1): move %s counted %d, want 1", m, n)
		}
	}
}

func TestPerftParallelMatchesSequential(t *testing.T) {
	cases := []struct {
		fen   string
		depth int
		want  uint64
	}{
		{chessmg.FENStartPos, 4, 197281},
		{chessmg.FENStartPos, 1, 20},
		{chessmg.FENStartPos, 0, 1},
		{fenKiwipete, 3, 97862},
	}
	for _, tc := range cases {
		b := mustParse(t, tc.fen)
		for _, workers := range []int{1, 2, 4, 8} {
			if got := b.PerftParallel(tc.depth, workers); got != tc.want {
				t.Fatalf("%s: parallel perft(%d) with %d workers = %d, want %d",
					tc.fen, tc.depth, workers, got, tc.want)
			}
		}
		if got := b.ToFEN(); got != tc.fen {
			t.Fatalf("parallel perft modified the receiver: %s", got)
		}
	}
}
