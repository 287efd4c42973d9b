package search

import (
	"testing"

	"github.com/funnsam/chessbot/eval"
	"github.com/funnsam/chessbot/rules"
	"github.com/funnsam/chessbot/tt"
)

func newSearcher() *Searcher {
	return &Searcher{TT: tt.NewWithBits(16), Age: 1, TimesUp: func() bool { return false }}
}

// TestQuiescenceStandPatBounded checks that with no captures available,
// quiescence degenerates to the static evaluation.
func TestQuiescenceStandPatBounded(t *testing.T) {
	pos, err := rules.FromFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := newSearcher()
	want := int32(eval.Evaluate(pos))
	if got := s.Quiescence(*pos, MinEval, MaxEval); got != want {
		t.Errorf("Quiescence(no captures) = %d, want stand-pat %d", got, want)
	}
}

func TestQuiescenceCheckmate(t *testing.T) {
	pos, err := rules.FromFEN("R5k1/5ppp/8/8/8/8/8/7K b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := newSearcher()
	if got := s.Quiescence(*pos, MinEval, MaxEval); got != MinEval {
		t.Errorf("Quiescence(checkmate) = %d, want MinEval", got)
	}
}

func TestAlphaBeatCheckmateReturnsMinEval(t *testing.T) {
	pos, err := rules.FromFEN("R5k1/5ppp/8/8/8/8/8/7K b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := newSearcher()
	history := make([]rules.Move, 0, 16)
	got := s.AlphaBeta(*pos, history, 4, SearchExtensionLimit, MinEval, MaxEval, true, false)
	if got != MinEval {
		t.Errorf("AlphaBeta(checkmate) = %d, want MinEval", got)
	}
}

func TestAlphaBetaStalemateReturnsZero(t *testing.T) {
	pos, err := rules.FromFEN("5k2/5P2/5K2/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := newSearcher()
	history := make([]rules.Move, 0, 16)
	got := s.AlphaBeta(*pos, history, 4, SearchExtensionLimit, MinEval, MaxEval, true, false)
	if got != 0 {
		t.Errorf("AlphaBeta(stalemate) = %d, want 0", got)
	}
}

// TestAlphaBetaFindsMateInOne drives AlphaBeta directly (without the
// root driver's parallel fan-out): a rook-and-king vs king-and-pawns
// back-rank position one ply from mate must score MaxEval at sufficient depth.
func TestAlphaBetaFindsMateInOne(t *testing.T) {
	pos, err := rules.FromFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := newSearcher()
	history := make([]rules.Move, 0, 16)
	got := s.AlphaBeta(*pos, history, 3, SearchExtensionLimit, MinEval, MaxEval, true, false)
	if got != MaxEval {
		t.Errorf("AlphaBeta(mate-in-1 position) = %d, want MaxEval", got)
	}
}

func TestOrderMovesPrefersCachedTTScore(t *testing.T) {
	pos := rules.StartingPosition()
	table := tt.NewWithBits(12)
	moves := pos.LegalMoves()

	e4, _ := pos.MoveFromUCI("e2e4")
	child, _ := pos.MakeMove(e4)
	table.Insert(child.Key, tt.Entry{Depth: tt.TagDepth(1, false), Score: MinEval, Age: 1})

	ordered := OrderMoves(table, pos, moves)
	if ordered[0] != e4 {
		t.Errorf("OrderMoves placed a move scored MinEval somewhere other than first ascending slot: got %s first", ordered[0].String())
	}
}
