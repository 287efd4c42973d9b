package eval

import (
	"testing"

	"github.com/funnsam/chessbot/rules"
)

func TestEvaluateStartingPositionIsZero(t *testing.T) {
	pos := rules.StartingPosition()
	if got := Evaluate(pos); got != 0 {
		t.Errorf("Evaluate(startpos) = %d, want 0", got)
	}
}

// mirrorFEN swaps ranks 1..8 and colors, the standard evaluator-symmetry
// transform: a pawn on e2 for White becomes a pawn on e7 for Black.
func mirrorFEN(t *testing.T, fen string) string {
	t.Helper()
	pos, err := rules.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	mirrored := &rules.Position{EpSquare: -1}
	for color := rules.White; color <= rules.Black; color++ {
		opp := rules.Black
		if color == rules.Black {
			opp = rules.White
		}
		for piece := rules.Pawn; piece <= rules.King; piece++ {
			bb := pos.Pieces[color][piece]
			for bb != 0 {
				sq := rules.BitScan(bb)
				bb &= bb - 1
				mirrored.Pieces[opp][piece] |= rules.SquareMask[sq^56]
				mirrored.Occupied[opp] |= rules.SquareMask[sq^56]
			}
		}
	}
	// The side to move is kept, so the mirrored side to move holds the
	// original opponent's material and the score flips sign.
	mirrored.SideToMove = pos.SideToMove
	rules.HashPosition(mirrored)
	return mirrored.FEN()
}

func TestEvaluateSymmetry(t *testing.T) {
	cases := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"8/5ppp/8/8/8/8/5PPP/6K1 w - - 0 1",
	}
	for _, fen := range cases {
		pos, err := rules.FromFEN(fen)
		if err != nil {
			t.Fatalf("FromFEN(%q): %v", fen, err)
		}
		mirroredFEN := mirrorFEN(t, fen)
		mirrored, err := rules.FromFEN(mirroredFEN)
		if err != nil {
			t.Fatalf("FromFEN(mirrored %q): %v", mirroredFEN, err)
		}
		if got, want := Evaluate(pos), -Evaluate(mirrored); got != want {
			t.Errorf("Evaluate(%q) = %d, want %d (= -Evaluate(mirror))", fen, got, want)
		}
	}
}

func TestBishopPairBonus(t *testing.T) {
	withPair, err := rules.FromFEN("4k3/8/8/8/8/2B2B2/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	withoutPair, err := rules.FromFEN("4k3/8/8/8/8/2B5/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	diff := Evaluate(withPair) - Evaluate(withoutPair)
	// One extra bishop (333cp), the pair bonus (50cp), and the f3
	// bishop's piece-square value (+10). The extra bishop also lowers
	// White's endgame weight from 1-333/1650 to 1-666/1650, which moves
	// Black's e8 king (read at d1: mid 0, end -30) from -24 to -18, so
	// White's margin shrinks by 6cp.
	if want := BishopValue + bishopPairBonus + 10 - 6; diff != want {
		t.Errorf("two-bishop vs one-bishop diff = %d, want %d", diff, want)
	}
}
