package search

import "github.com/funnsam/chessbot/rules"

// IsRepetitionCycle implements spec.md §4.4's sufficient (not
// necessary) threefold-cycle detector: given the move history leading
// to the current frame and a candidate move m about to be played, it
// reports whether playing m would complete a three-fold repetition
// formed purely from the last few plies of moves.
func IsRepetitionCycle(history []rules.Move, m rules.Move) bool {
	n := len(history)
	if n < 11 {
		return false
	}
	return history[n-11] == history[n-7] && history[n-7] == history[n-3] &&
		history[n-10] == history[n-6] && history[n-6] == history[n-2] &&
		history[n-9] == history[n-5] && history[n-5] == history[n-1] &&
		history[n-8] == history[n-4] && history[n-4] == m
}
