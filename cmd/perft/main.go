package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/slices"

	"chess-movegen/chessmg"
)

func main() {
	fen := flag.String("fen", chessmg.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "perft depth in plies (required)")
	divide := flag.Bool("divide", false, "print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "repeat perft N times for steadier timings")
	label := flag.String("label", "", "optional label for the result line")
	workers := flag.Int("workers", 1, "worker goroutines for the root split")
	prof := flag.String("profile", "", "write a cpu or mem profile for the run")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *depth <= 0 {
		logger.Fatal().Msg("-depth must be positive")
	}

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		logger.Fatal().Str("profile", *prof).Msg("profile mode must be cpu or mem")
	}

	board, err := chessmg.ParseFEN(*fen)
	if err != nil {
		logger.Fatal().Err(err).Str("fen", *fen).Msg("cannot parse position")
	}

	if *divide {
		counts := board.PerftDivide(*depth)
		byName := make(map[string]uint64, len(counts))
		names := make([]string, 0, len(counts))
		var total uint64
		for m, n := range counts {
			byName[m.String()] = n
			names = append(names, m.String())
			total += n
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Printf("%s: %d\n", name, byName[name])
		}
		fmt.Printf("Total: %d\n", total)
		return
	}

	var bar *progressbar.ProgressBar
	if *repeat > 1 {
		bar = progressbar.Default(int64(*repeat), "perft")
	}

	var nodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		if *workers > 1 {
			nodes = board.PerftParallel(*depth, *workers)
		} else {
			nodes = board.Perft(*depth)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	elapsed := time.Since(start)
	nps := float64(nodes) * float64(*repeat) / elapsed.Seconds()

	fmt.Printf("perft(%d) = %d\n", *depth, nodes)
	ev := logger.Info().
		Int("depth", *depth).
		Uint64("nodes", nodes).
		Dur("elapsed", elapsed).
		Float64("mnps", nps/1e6).
		Int("workers", *workers)
	if *label != "" {
		ev = ev.Str("label", *label)
	}
	ev.Msg("perft complete")
}
