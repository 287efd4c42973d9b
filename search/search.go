// Package search implements the recursive core of spec.md §4: move
// ordering, threefold-repetition detection, alpha-beta with null-move
// pruning/PVS/LMR/extensions, quiescence, and the iterative-deepening
// root driver. The teacher engine's negamax shape (engine/search.go)
// is followed throughout; the pruning/reduction decisions themselves
// come from spec.md rather than the teacher's tuned constants.
package search

import (
	"math"
	"sync/atomic"

	"github.com/funnsam/chessbot/eval"
	"github.com/funnsam/chessbot/rules"
	"github.com/funnsam/chessbot/tt"
)

// Score sentinels, per spec.md §3.
const (
	MaxEval int32 = math.MaxInt32 / 2
	MinEval int32 = -MaxEval
)

// Tuning constants named directly in spec.md §4.5/§4.7.
const (
	ReducedSearchDepth   = 3 // i >= this triggers late-move reduction
	SearchExtensionLimit = 8 // per-branch extension budget handed from the root
	NullMoveReduction    = 4
	MaxSearchDepth       = 16
)

// Searcher holds the state shared by every recursive call within one
// search (all of its deepening iterations): the persistent cross-move TT, the current
// search's age tag, the time-up predicate, and a shared node counter.
// A Searcher is safe to share across the root-parallel worker pool;
// only Nodes is mutated concurrently (atomically).
type Searcher struct {
	TT      *tt.Table
	Age     uint32
	TimesUp func() bool
	Nodes   int64
}

func (s *Searcher) incNodes() {
	atomic.AddInt64(&s.Nodes, 1)
}

// ZeroWindowSearch is the null-window probe spec.md §4.5 names
// zero_window_search: alpha_beta with beta-1/beta and zeroWindow=true.
func (s *Searcher) ZeroWindowSearch(pos rules.Position, history []rules.Move, depth int, extBudget int, beta int32) int32 {
	return s.AlphaBeta(pos, history, depth, extBudget, beta-1, beta, false, true)
}

// AlphaBeta is the recursive negamax search of spec.md §4.5.
func (s *Searcher) AlphaBeta(pos rules.Position, history []rules.Move, depth int, extBudget int, alpha, beta int32, isPV, zeroWindow bool) int32 {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if pos.IsInCheck() {
			return MinEval
		}
		return 0
	}

	s.incNodes()

	ttDepth := tt.TagDepth(int64(depth), zeroWindow)
	if entry, found := s.TT.Get(pos.Key); found {
		if entry.Depth >= ttDepth && (!isPV || (alpha < entry.Score && entry.Score < beta)) {
			return entry.Score
		}
	}

	if s.TimesUp() {
		return 0
	}

	if depth == 0 {
		return s.Quiescence(pos, alpha, beta)
	}

	inCheck := pos.IsInCheck()

	// Null-move pruning (spec.md §4.5). Guarded additionally by
	// non-trivial material to avoid zugzwang mistakes in king-and-pawn
	// endings, resolving the open question in spec.md §9 in favor of
	// the guard.
	if !inCheck && pos.LastMove != rules.NullMove && pos.HasNonPawnMaterial() {
		nullChild := pos.MakeNullMove()
		reduced := depth - NullMoveReduction
		if reduced < 0 {
			reduced = 0
		}
		val := -s.ZeroWindowSearch(nullChild, history, reduced, extBudget, 1-beta)
		if s.TimesUp() {
			return 0
		}
		if val >= beta {
			return val
		}
	}

	ordered := OrderMoves(s.TT, &pos, moves)

	maxScore := MinEval
	if zeroWindow {
		maxScore = alpha
	}
	alphaRaised := false

	for i, m := range ordered {
		var childScore int32
		if IsRepetitionCycle(history, m) {
			childScore = 0
		} else {
			child, ok := pos.MakeMove(m)
			if !ok {
				continue
			}

			ext := 0
			if child.IsInCheck() {
				ext++
			}
			if m.IsPromotion() {
				ext++
			}
			if ext > extBudget {
				ext = extBudget
			}
			reduced := i >= ReducedSearchDepth
			nextDepth := depth - 1 + ext
			if reduced {
				nextDepth--
			}
			if nextDepth < 0 {
				nextDepth = 0
			}
			// Force a fresh backing array: history is shared across
			// sibling branches in this loop, and a plain append could
			// silently overwrite a sibling's view if capacity allowed.
			childHistory := append(history[:len(history):len(history)], m)
			childExtBudget := extBudget - ext

			var score int32
			var usedPV, usedZW bool
			switch {
			case zeroWindow:
				usedPV, usedZW = false, true
				score = -s.AlphaBeta(child, childHistory, nextDepth, childExtBudget, -beta, -alpha, false, true)
			case !alphaRaised:
				usedPV, usedZW = true, false
				score = -s.AlphaBeta(child, childHistory, nextDepth, childExtBudget, -beta, -alpha, true, false)
			default:
				usedPV, usedZW = false, true
				scout := -s.AlphaBeta(child, childHistory, nextDepth, childExtBudget, -alpha-1, -alpha, false, true)
				score = scout
				if scout > maxScore && scout < beta {
					usedPV, usedZW = true, false
					score = -s.AlphaBeta(child, childHistory, nextDepth, childExtBudget, -beta, -alpha, true, false)
				}
			}

			if s.TimesUp() {
				return 0
			}

			if !zeroWindow && score > maxScore && reduced {
				redoDepth := nextDepth + 1
				redone := -s.AlphaBeta(child, childHistory, redoDepth, childExtBudget, negIf(usedZW, beta, alpha+1), -alpha, usedPV, usedZW)
				if s.TimesUp() {
					// Keep the earlier (reduced) value.
				} else {
					score = redone
				}
			}

			childScore = score

			s.TT.Insert(child.Key, tt.Entry{Depth: ttDepth, Score: childScore, Age: s.Age})
		}

		if childScore >= beta {
			return childScore
		}
		if childScore > maxScore {
			maxScore = childScore
			if childScore > alpha {
				alpha = childScore
				alphaRaised = true
			}
		}
	}

	return maxScore
}

// negIf picks -beta when usedZeroWindow's companion full-window
// re-search bound is wanted, or -alphaPlus1 for the zero-window
// re-search bound; a small helper to keep the re-search call symmetric
// with whichever window mode produced the surprising score.
func negIf(usedZW bool, beta, alphaPlus1 int32) int32 {
	if usedZW {
		return -alphaPlus1
	}
	return -beta
}

// Quiescence is the leaf refinement of spec.md §4.6: it resolves
// captures (and, while in check, all legal evasions) until the
// position is quiet, so the static evaluator's score is trustworthy.
func (s *Searcher) Quiescence(pos rules.Position, alpha, beta int32) int32 {
	s.incNodes()
	if s.TimesUp() {
		return 0
	}

	inCheck := pos.IsInCheck()
	var moves []rules.Move
	if inCheck {
		moves = pos.LegalMoves()
		if len(moves) == 0 {
			return MinEval
		}
	}

	// A side in check cannot stand pat: it is forced to move, so
	// maxScore starts at MinEval and alpha is not floored by the
	// static eval, matching the teacher's quiescence (the stand-pat
	// floor below applies only off the not-in-check branch).
	var maxScore int32
	if inCheck {
		maxScore = MinEval
	} else {
		standPat := int32(eval.Evaluate(&pos))
		maxScore = standPat
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
		moves = pos.LegalCaptures()
	}

	ordered := OrderMoves(s.TT, &pos, moves)
	for _, m := range ordered {
		child, ok := pos.MakeMove(m)
		if !ok {
			continue
		}
		childScore := -s.Quiescence(child, -beta, -alpha)
		if childScore >= beta {
			return childScore
		}
		if childScore > maxScore {
			maxScore = childScore
			if childScore > alpha {
				alpha = childScore
			}
		}
	}
	return maxScore
}
