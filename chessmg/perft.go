package chessmg

import "golang.org/x/sync/errgroup"

// perftCtx holds one reusable move buffer per tree level so the walk
// allocates only on its first visit to each depth.
type perftCtx struct {
	bufs [][]Move
}

func (c *perftCtx) bufFor(depth int) []Move {
	for len(c.bufs) <= depth {
		c.bufs = append(c.bufs, make([]Move, 0, 256))
	}
	return c.bufs[depth][:0]
}

func (c *perftCtx) run(b *Board, depth int) uint64 {
	moves := b.GenerateMovesInto(c.bufFor(depth))
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		b.MakeMove(m)
		nodes += c.run(b, depth-1)
		b.UnmakeMove(m)
	}
	return nodes
}

// Perft counts the leaf nodes of the legal move tree rooted at the
// position, to the given depth in plies. Depth zero counts the position
// itself, so it is always 1. The board is mutated during the walk and
// restored before returning.
func (b *Board) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var ctx perftCtx
	return ctx.run(b, depth)
}

// PerftDivide returns the subtree leaf count below each root move, the
// per-move breakdown used to bisect a generator disagreement. The counts
// sum to Perft(depth).
func (b *Board) PerftDivide(depth int) map[Move]uint64 {
	counts := make(map[Move]uint64)
	if depth <= 0 {
		return counts
	}
	var ctx perftCtx
	for _, m := range b.GenerateMovesInto(ctx.bufFor(depth)) {
		if depth == 1 {
			counts[m] = 1
			continue
		}
		b.MakeMove(m)
		counts[m] = ctx.run(b, depth-1)
		b.UnmakeMove(m)
	}
	return counts
}

// PerftParallel splits the root moves across worker goroutines and sums
// the subtree counts. Every worker walks its own copy of the position, so
// the receiver is never mutated. The result equals Perft(depth) for any
// worker count.
func (b *Board) PerftParallel(depth, workers int) uint64 {
	if depth <= 0 {
		return 1
	}
	if workers < 1 {
		workers = 1
	}

	root := *b
	moves := root.GenerateMovesInto(make([]Move, 0, 128))
	if depth == 1 {
		return uint64(len(moves))
	}

	counts := make([]uint64, len(moves))
	jobs := make(chan int)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			child := root
			var ctx perftCtx
			for i := range jobs {
				child.MakeMove(moves[i])
				counts[i] = ctx.run(&child, depth-1)
				child.UnmakeMove(moves[i])
			}
			return nil
		})
	}
	for i := range moves {
		jobs <- i
	}
	close(jobs)
	_ = g.Wait()

	var nodes uint64
	for _, n := range counts {
		nodes += n
	}
	return nodes
}
