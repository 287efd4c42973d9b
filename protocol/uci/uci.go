// Package uci implements the line-oriented Universal Chess Interface
// front end of spec.md §6: "uci", "isready", "ucinewgame", "position",
// "go", "stop", "quit" read from stdin, with "bestmove"/"info" written
// to stdout. Grounded on hailam-chessplay's internal/uci/uci.go, with
// the NNUE/Syzygy/profiling options that package carries dropped since
// nothing in this engine exercises them.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/funnsam/chessbot/engine"
	"github.com/funnsam/chessbot/rules"
	"github.com/funnsam/chessbot/search"
)

// UCI drives the protocol loop against one engine.Engine and the
// position/history it accumulates from "position" commands.
type UCI struct {
	engine  *engine.Engine
	pos     *rules.Position
	history []rules.Move
}

// New creates a protocol handler wrapping eng, starting from the
// standard initial position.
func New(eng *engine.Engine) *UCI {
	return &UCI{engine: eng, pos: rules.StartingPosition()}
}

// Run reads commands from stdin until "quit" or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.engine.NewGame()
			u.pos = rules.StartingPosition()
			u.history = nil
		case "position":
			u.handlePosition(args)
		case "setoption":
			u.handleSetOption(args)
		case "go":
			u.handleGo(args)
		case "stop":
			// Search runs synchronously in this front end (spec.md §6
			// makes no provision for pondering), so by the time "stop"
			// is read the previous "go" has already produced its
			// bestmove; nothing further to cancel.
		case "quit":
			return
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Println("id name chessbot")
	fmt.Println("id author the chessbot contributors")
	for _, opt := range u.engine.Options() {
		fmt.Printf("option name %s type spin default %d min %d max %d\n", opt.Name, opt.Val, opt.Min, opt.Max)
	}
	fmt.Println("uciok")
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingValue := false
	for _, a := range args {
		switch a {
		case "name":
			readingValue = false
		case "value":
			readingValue = true
		default:
			if readingValue {
				if value != "" {
					value += " "
				}
				value += a
			} else {
				if name != "" {
					name += " "
				}
				name += a
			}
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return
	}
	for _, opt := range u.engine.Options() {
		if strings.EqualFold(opt.Name, name) {
			if n < opt.Min {
				n = opt.Min
			}
			if n > opt.Max {
				n = opt.Max
			}
			opt.Val = n
		}
	}
}

// handlePosition parses "position startpos [moves ...]" or
// "position fen <fen> [moves ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		u.pos = rules.StartingPosition()
		moveStart = 1
	case "fen":
		end := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				end = i
				break
			}
		}
		pos, err := rules.FromFEN(strings.Join(args[1:end], " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid fen: %v\n", err)
			return
		}
		u.pos = pos
		moveStart = end
	default:
		return
	}

	u.history = nil
	for i, a := range args {
		if a == "moves" {
			moveStart = i + 1
			break
		}
	}
	if moveStart >= len(args) {
		return
	}
	for _, s := range args[moveStart:] {
		m, ok := u.pos.MoveFromUCI(s)
		if !ok {
			fmt.Fprintf(os.Stderr, "info string invalid move: %s\n", s)
			return
		}
		child, legal := u.pos.MakeMove(m)
		if !legal {
			fmt.Fprintf(os.Stderr, "info string illegal move: %s\n", s)
			return
		}
		u.history = append(u.history, m)
		*u.pos = child
	}
}

// handleGo parses clock/movetime arguments and runs a synchronous
// search, reporting one "info" line per completed depth and a final
// "bestmove" line.
func (u *UCI) handleGo(args []string) {
	var wtime, btime, winc, binc, movetime int64
	infinite := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			i++
			wtime = atoi64(args, i)
		case "btime":
			i++
			btime = atoi64(args, i)
		case "winc":
			i++
			winc = atoi64(args, i)
		case "binc":
			i++
			binc = atoi64(args, i)
		case "movetime":
			i++
			movetime = atoi64(args, i)
		case "infinite":
			infinite = true
		}
	}

	u.engine.Update = func(r search.Result) {
		fmt.Printf("info depth %d score cp %d nodes %d pv %s\n", r.Depth, r.Score, r.Nodes, r.Move.String())
	}

	var best rules.Move
	switch {
	case movetime > 0:
		best, _ = u.engine.PlayFixedTime(*u.pos, u.history, movetime)
	case infinite:
		best, _ = u.engine.PlayFixedTime(*u.pos, u.history, int64(1)<<30)
	default:
		timeLeft, inc := wtime, winc
		if u.pos.SideToMove == rules.Black {
			timeLeft, inc = btime, binc
		}
		best, _ = u.engine.Play(*u.pos, u.history, timeLeft, inc)
	}

	if best == rules.NullMove {
		fmt.Println("bestmove 0000")
		return
	}
	fmt.Printf("bestmove %s\n", best.String())
}

func atoi64(args []string, i int) int64 {
	if i < 0 || i >= len(args) {
		return 0
	}
	n, _ := strconv.ParseInt(args[i], 10, 64)
	return n
}
