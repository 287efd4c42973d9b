package search

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/funnsam/chessbot/rules"
	"github.com/funnsam/chessbot/timeman"
	"github.com/funnsam/chessbot/tt"
)

// Result is what one completed iterative-deepening depth reports: the
// best root move found, its score from the side-to-move's perspective,
// the depth it was searched to, and the running node count.
type Result struct {
	Move  rules.Move
	Score int32
	Depth int
	Nodes int64
}

// Driver runs spec.md §4.7's iterative-deepening root loop: searching
// depth 1, 2, 3, ... against a shared transposition table until the
// time manager says stop, re-sorting the root move list by each
// depth's scores so the next iteration searches the best candidate
// first. Root work is fanned out over Workers goroutines sharing one
// Searcher and TT, mirroring the teacher's thread-pool shape
// (engine/engine.go's Engine.threads, engine/search.go's bestMove).
type Driver struct {
	TT      *tt.Table
	Age     uint32
	Workers int
}

// Report, if set, is called once per completed depth from exactly one
// worker (the first to finish that depth), in the shape of the
// teacher's Engine.Update/SearchInfo.
type Report func(Result)

// Search runs the root driver to completion or until tm says the
// budget has elapsed, and returns the best move found.
func (d *Driver) Search(pos rules.Position, history []rules.Move, tm *timeman.Manager, onReport Report) Result {
	rootMoves := pos.LegalMoves()
	if len(rootMoves) == 0 {
		return Result{}
	}
	if len(rootMoves) == 1 {
		return Result{Move: rootMoves[0], Depth: 0}
	}
	// Order the root list by static evaluation of each resulting child
	// before the first deepening iteration starts.
	rootMoves = OrderMoves(d.TT, &pos, rootMoves)

	workers := d.Workers
	if workers < 1 {
		workers = 1
	}

	s := &Searcher{TT: d.TT, Age: d.Age, TimesUp: tm.TimesUp}

	var mu sync.Mutex
	best := Result{Move: rootMoves[0]}
	reportedDepth := 0

	// Root work is fanned out with errgroup rather than a bare
	// WaitGroup so a future hard-deadline context (ctx.Done() feeding
	// tm) can cancel every worker through the same group, the way the
	// teacher's bestMove cancels its thread pool via context.
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		workerID := w
		g.Go(func() error {
			runIterativeDeepening(s, pos, history, rootMoves, tm, func(r Result) {
				mu.Lock()
				defer mu.Unlock()
				if r.Depth > reportedDepth || (r.Depth == reportedDepth && workerID == 0) {
					firstAtDepth := r.Depth > reportedDepth
					reportedDepth = r.Depth
					best = r
					if onReport != nil && firstAtDepth {
						onReport(r)
					}
				}
			})
			return nil
		})
	}
	g.Wait()

	best.Nodes = s.Nodes
	return best
}

// runIterativeDeepening is one worker's depth-1, 2, 3, ... loop. Every
// worker shares the same Searcher (and so the same TT), which lets
// shallower, faster-finishing depths from other workers feed deeper
// ones' move ordering even without explicit coordination.
func runIterativeDeepening(s *Searcher, root rules.Position, history []rules.Move, rootMoves []rules.Move, tm *timeman.Manager, report func(Result)) {
	moves := append([]rules.Move{}, rootMoves...)
	var lastMove rules.Move
	var lastScore int32

	for depth := 1; depth <= MaxSearchDepth; depth++ {
		if tm.TimesUp() {
			return
		}

		type scored struct {
			m rules.Move
			v int32
		}
		scores := make([]scored, 0, len(moves))

		bestMove := moves[0]
		bestScore := MinEval
		maxRootScore := MinEval // per-iteration root LMR re-search gate
		failed := false

		for j, m := range moves {
			child, ok := root.MakeMove(m)
			if !ok {
				continue
			}
			childHistory := append(history[:len(history):len(history)], m)

			reduced := j >= ReducedSearchDepth
			childDepth := depth - 1
			if reduced {
				childDepth--
			}
			if childDepth < 0 {
				childDepth = 0
			}

			v := -s.AlphaBeta(child, childHistory, childDepth, SearchExtensionLimit, MinEval, MaxEval, true, false)

			if tm.TimesUp() {
				failed = true
				break
			}

			if reduced && v > maxRootScore {
				redone := -s.AlphaBeta(child, childHistory, childDepth+1, SearchExtensionLimit, MinEval, -v, true, false)
				if tm.TimesUp() {
					// Keep the reduced-depth value.
				} else {
					v = redone
				}
			}

			if v > maxRootScore {
				maxRootScore = v
			}

			scores = append(scores, scored{m, v})
			if v > bestScore {
				bestScore = v
				bestMove = m
			}
		}

		if failed {
			return
		}

		lastMove, lastScore = bestMove, bestScore
		sort.SliceStable(scores, func(i, j int) bool { return scores[i].v > scores[j].v })
		moves = moves[:0]
		for _, sc := range scores {
			moves = append(moves, sc.m)
		}

		report(Result{Move: lastMove, Score: lastScore, Depth: depth, Nodes: s.Nodes})

		if lastScore >= MaxEval-int32(MaxSearchDepth) || lastScore <= -MaxEval+int32(MaxSearchDepth) {
			// Forced mate found; no point searching deeper.
			return
		}
	}
}
