package rules

import "math/rand"

var (
	zobristPiece    [2][6][64]uint64
	zobristCastling [16]uint64
	zobristEnPassant [64]uint64
	zobristSide     uint64
)

func init() {
	r := rand.New(rand.NewSource(1070372))
	for c := 0; c < 2; c++ {
		for p := 0; p < 6; p++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][p][sq] = r.Uint64()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = r.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = r.Uint64()
	}
	zobristSide = r.Uint64()
}

// HashPosition recomputes pos.Key from scratch; used after FEN parsing.
func HashPosition(pos *Position) {
	pos.Key = 0
	for c := 0; c < 2; c++ {
		for p := 0; p < 6; p++ {
			bb := pos.byColorAndPiece(c, p)
			for bb != 0 {
				sq := BitScan(bb)
				bb &= bb - 1
				pos.Key ^= zobristPiece[c][p][sq]
			}
		}
	}
	pos.Key ^= zobristCastling[pos.Castling]
	if pos.EpSquare >= 0 {
		pos.Key ^= zobristEnPassant[File(pos.EpSquare)]
	}
	if pos.SideToMove == White {
		pos.Key ^= zobristSide
	}
}
