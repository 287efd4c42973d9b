// Package eval implements the static evaluator of spec.md §4.1: a
// pure, deterministic position → centipawn function from the side to
// move's perspective, built from material, a bishop-pair bonus, and a
// tapered piece-square table.
package eval

import "github.com/funnsam/chessbot/rules"

// Piece values in centipawns, per spec.md §4.1.
const (
	PawnValue   = 100
	KnightValue = 305
	BishopValue = 333
	RookValue   = 563
	QueenValue  = 950
	KingValue   = 20000
)

var pieceValue = [6]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue}

const bishopPairBonus = 50

// endgamePhaseMaterial is the non-pawn material total (spec.md §4.1's
// "M") below which a side is considered fully in the endgame.
const endgamePhaseMaterial = 1650

// Evaluate scores pos from the side-to-move's perspective.
func Evaluate(pos *rules.Position) int {
	whiteWeight := endgameWeight(pos, rules.White)
	blackWeight := endgameWeight(pos, rules.Black)

	white := colorScore(pos, rules.White, blackWeight)
	black := colorScore(pos, rules.Black, whiteWeight)

	score := white - black
	if pos.SideToMove != rules.White {
		score = -score
	}
	return score
}

// endgameWeight computes w = 1 - min(M/1650, 1) for color's non-pawn
// material, a float in [0,1] where 1 means "no non-pawn material left".
func endgameWeight(pos *rules.Position, color int) float64 {
	m := 0
	for _, p := range [4]int{rules.Knight, rules.Bishop, rules.Rook, rules.Queen} {
		m += rules.PopCount(pos.Pieces[color][p]) * pieceValue[p]
	}
	ratio := float64(m) / float64(endgamePhaseMaterial)
	if ratio > 1 {
		ratio = 1
	}
	return 1 - ratio
}

// colorScore sums material, the bishop-pair bonus, and the PST
// contribution (tapered by the opponent's endgame weight) for color.
func colorScore(pos *rules.Position, color int, opponentWeight float64) int {
	total := 0
	for piece := rules.Pawn; piece <= rules.King; piece++ {
		bb := pos.Pieces[color][piece]
		count := rules.PopCount(bb)
		total += count * pieceValue[piece]

		for b := bb; b != 0; b &= b - 1 {
			sq := rules.BitScan(b)
			oriented := sq
			if color == rules.Black {
				oriented = sq ^ 63
			}
			idx := oriented
			contribution := float64(pstMid[piece][idx])*(1-opponentWeight) + float64(pstEnd[piece][idx])*opponentWeight
			total += round(contribution)
		}
	}
	if rules.PopCount(pos.Pieces[color][rules.Bishop]) == 2 {
		total += bishopPairBonus
	}
	return total
}

func round(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}
