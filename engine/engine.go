// Package engine wires rules, eval, tt, search, and timeman behind the
// single Play entrypoint spec.md §6 describes, and owns the pieces of
// state a UCI-style front end needs across a whole game: a persistent
// transposition table, a search generation counter, and a small set of
// tunable options in the teacher's IntUciOption shape
// (engine/engine.go's Engine.Hash/Threads/MoveOverhead in the teacher).
package engine

import (
	"runtime"
	"time"

	"github.com/funnsam/chessbot/rules"
	"github.com/funnsam/chessbot/search"
	"github.com/funnsam/chessbot/timeman"
	"github.com/funnsam/chessbot/tt"
)

// IntUciOption is an integer-valued, bounded engine option, reported to
// a UCI front end as "option name <Name> type spin default <Val> min
// <Min> max <Max>". Grounded directly on the teacher's identically
// named type.
type IntUciOption struct {
	Name string
	Min  int
	Max  int
	Val  int
}

// Stats summarizes one Play() call for a UCI "info" line or an online
// adapter's diagnostics payload.
type Stats struct {
	Depth int
	Nodes int64
	Score int32
}

// Engine holds state that persists across a game: the transposition
// table survives from move to move (only its Age advances), while
// options are configurable before NewGame.
type Engine struct {
	Hash         IntUciOption
	Threads      IntUciOption
	MoveOverhead IntUciOption

	table *tt.Table
	age   uint32

	// Update, if set, is called once per completed iterative-deepening
	// depth during Play, in the teacher's Engine.Update/SearchInfo shape.
	Update func(search.Result)
}

// New builds an Engine with the teacher's default option values scaled
// to this process's hardware.
func New() *Engine {
	return &Engine{
		Hash:         IntUciOption{"Hash", 1, 4096, 64},
		Threads:      IntUciOption{"Threads", 1, runtime.NumCPU(), runtime.NumCPU()},
		MoveOverhead: IntUciOption{"Move Overhead", 0, 10000, 50},
	}
}

// Options returns the engine's tunable options, for a UCI front end's
// "option name ..." advertisement and "setoption" dispatch.
func (e *Engine) Options() []*IntUciOption {
	return []*IntUciOption{&e.Hash, &e.Threads, &e.MoveOverhead}
}

// NewGame resets cross-game state: a freshly sized transposition table
// and the age counter it decorated fresh entries with. Called once per
// UCI "ucinewgame".
func (e *Engine) NewGame() {
	e.table = tt.NewWithMegabytes(e.Hash.Val)
	e.age = 0
}

// Play searches pos to find the best move given the game history (used
// for repetition detection) and a clock budget, per spec.md §6. It
// advances the age counter stamped on the entries this search stores;
// the table is always-replace and never compares ages, so entries from
// previous moves stay readable until a later insert overwrites them.
func (e *Engine) Play(pos rules.Position, history []rules.Move, timeLeftMs, timeIncrMs int64) (rules.Move, Stats) {
	if e.table == nil {
		e.NewGame()
	}
	e.age++

	overhead := int64(e.MoveOverhead.Val)
	budgetMs := timeLeftMs - overhead
	if budgetMs < 0 {
		budgetMs = 0
	}
	tm := timeman.New(budgetMs, timeIncrMs)

	driver := &search.Driver{TT: e.table, Age: e.age, Workers: e.Threads.Val}
	result := driver.Search(pos, history, tm, e.Update)

	return result.Move, Stats{Depth: result.Depth, Nodes: result.Nodes, Score: result.Score}
}

func msToDuration(ms int64) time.Duration {
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// PlayFixedTime searches for exactly budget regardless of the clock,
// for UCI's "go movetime" and "go infinite" (via a very large budget)
// variants.
func (e *Engine) PlayFixedTime(pos rules.Position, history []rules.Move, budgetMs int64) (rules.Move, Stats) {
	if e.table == nil {
		e.NewGame()
	}
	e.age++

	tm := timeman.NewFixed(msToDuration(budgetMs))
	driver := &search.Driver{TT: e.table, Age: e.age, Workers: e.Threads.Val}
	result := driver.Search(pos, history, tm, e.Update)

	return result.Move, Stats{Depth: result.Depth, Nodes: result.Nodes, Score: result.Score}
}
