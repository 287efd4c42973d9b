package rules

// MoveFromUCI resolves a long-algebraic UCI move string (e.g. "e2e4",
// "e7e8q") against pos's legal moves. Hosts must not construct Move
// values any other way: this is the sole boundary between untrusted
// protocol text and the opaque Move type.
func (pos *Position) MoveFromUCI(s string) (Move, bool) {
	if len(s) < 4 {
		return NullMove, false
	}
	from, err := parseSquareName(s[0:2])
	if err != nil {
		return NullMove, false
	}
	to, err := parseSquareName(s[2:4])
	if err != nil {
		return NullMove, false
	}
	promo := None
	if len(s) >= 5 {
		promo = promoPieceFromLetter(s[4])
	}
	for _, m := range pos.LegalMoves() {
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, true
		}
	}
	return NullMove, false
}
