package search

import (
	"sort"

	"github.com/funnsam/chessbot/eval"
	"github.com/funnsam/chessbot/rules"
	"github.com/funnsam/chessbot/tt"
)

// OrderMoves implements spec.md §4.3: a cheap 1-ply shallow sort of
// legal moves by the TT score of the resulting child if cached, else
// the child's static evaluation. The result is ascending by that key,
// which is "best first" from the mover's own perspective once negamax
// negates it back.
func OrderMoves(table *tt.Table, pos *rules.Position, moves []rules.Move) []rules.Move {
	type keyed struct {
		m   rules.Move
		key int32
	}
	keys := make([]keyed, 0, len(moves))
	for _, m := range moves {
		child, ok := pos.MakeMove(m)
		if !ok {
			continue
		}
		var key int32
		if e, found := table.Get(child.Key); found {
			key = e.Score
		} else {
			key = int32(eval.Evaluate(&child))
		}
		keys = append(keys, keyed{m, key})
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].key < keys[j].key })
	ordered := make([]rules.Move, len(keys))
	for i, k := range keys {
		ordered[i] = k.m
	}
	return ordered
}
