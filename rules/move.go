package rules

// Move is an opaque, immutable value: a packed encoding of the squares
// and special-move information needed to make it and to answer the
// per-move queries spec.md §3 requires, without needing the Position
// it was generated from.
type Move uint32

const (
	moveFromShift      = 0
	moveToShift        = 6
	movePieceShift     = 12
	moveCapturedShift  = 15
	movePromoShift     = 18
	moveFlagShift      = 21
	moveFieldMask      = 0x3F
	movePieceFieldMask = 0x7
	moveFlagFieldMask  = 0x7
)

const (
	flagQuiet = iota
	flagDoublePush
	flagCapture
	flagEnPassant
	flagCastle
	flagPromotion
	flagPromotionCapture
)

// NullMove is the sentinel default Move value.
const NullMove Move = 0

func makeMove(from, to, piece, captured, promo, flag int) Move {
	return Move(from&moveFieldMask) |
		Move(to&moveFieldMask)<<moveToShift |
		Move(piece&movePieceFieldMask)<<movePieceShift |
		Move(captured&movePieceFieldMask)<<moveCapturedShift |
		Move(promo&movePieceFieldMask)<<movePromoShift |
		Move(flag&moveFlagFieldMask)<<moveFlagShift
}

// From returns the source square (0..63).
func (m Move) From() int { return int(m>>moveFromShift) & moveFieldMask }

// To returns the destination square (0..63).
func (m Move) To() int { return int(m>>moveToShift) & moveFieldMask }

// Piece returns the moving piece type.
func (m Move) Piece() int { return int(m>>movePieceShift) & movePieceFieldMask }

// CapturedPiece returns the captured piece type, or None if the move
// is not a capture (including en-passant, which reports Pawn).
func (m Move) CapturedPiece() int { return int(m>>moveCapturedShift) & movePieceFieldMask }

// Promotion returns the promotion piece type, or None for non-promotions.
func (m Move) Promotion() int { return int(m>>movePromoShift) & movePieceFieldMask }

func (m Move) flag() int { return int(m>>moveFlagShift) & moveFlagFieldMask }

// IsCapture reports whether the move captures a piece (including en-passant).
func (m Move) IsCapture() bool {
	f := m.flag()
	return f == flagCapture || f == flagEnPassant || f == flagPromotionCapture
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	f := m.flag()
	return f == flagPromotion || f == flagPromotionCapture
}

func (m Move) isEnPassant() bool { return m.flag() == flagEnPassant }
func (m Move) isCastle() bool    { return m.flag() == flagCastle }
func (m Move) isDoublePush() bool { return m.flag() == flagDoublePush }

// String renders the move in long-algebraic UCI notation, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := squareName(m.From()) + squareName(m.To())
	if m.IsPromotion() {
		s += string(promoLetter(m.Promotion()))
	}
	return s
}

func squareName(sq int) string {
	return string(rune('a'+File(sq))) + string(rune('1'+Rank(sq)))
}

func promoLetter(piece int) byte {
	switch piece {
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	}
	return '?'
}

func promoPieceFromLetter(b byte) int {
	switch b {
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	}
	return None
}
