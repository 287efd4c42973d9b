// Package online implements the thin newline-delimited-JSON-over-HTTPS
// adapter spec.md §6 describes for an online play service: a stream of
// game-state events carrying the clock, and a posted move report in
// the same shape as the text front-end's bestmove. Grounded on
// hailam-chessplay's internal/tablebase/lichess.go for the net/http +
// encoding/json idiom this corpus uses for HTTP+JSON integrations.
package online

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/funnsam/chessbot/engine"
	"github.com/funnsam/chessbot/rules"
)

// gameState is one NDJSON line of the service's game stream: the moves
// played so far (space-separated UCI) and both clocks in milliseconds.
type gameState struct {
	Type  string `json:"type"`
	Moves string `json:"moves"`
	WTime int64  `json:"wtime"`
	BTime int64  `json:"btime"`
	WInc  int64  `json:"winc"`
	BInc  int64  `json:"binc"`
}

// moveReport is posted back to the service once a move is chosen; its
// shape mirrors the text front-end's "bestmove <uci>" line.
type moveReport struct {
	Move string `json:"move"`
}

// Client plays one game against an online service's NDJSON stream
// endpoint, posting each chosen move to its move endpoint.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	GameID    string
	AuthToken string
	Engine    *engine.Engine
	startpos  *rules.Position
	history   []rules.Move
}

// New creates a Client for one game, defaulting to a 30s HTTP timeout
// as the stream connection is expected to be long-lived per request
// but individual reads/writes should not hang indefinitely.
func New(baseURL, gameID, authToken string, eng *engine.Engine) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 30 * time.Second},
		BaseURL:   baseURL,
		GameID:    gameID,
		AuthToken: authToken,
		Engine:    eng,
		startpos:  rules.StartingPosition(),
	}
}

// Run connects to the game's NDJSON stream and plays moves as the
// engine's side comes up, until the stream closes.
func (c *Client) Run() error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/bot/game/stream/"+c.GameID, nil)
	if err != nil {
		return err
	}
	c.setAuth(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var state gameState
		if err := json.Unmarshal(line, &state); err != nil {
			continue
		}
		if err := c.handleState(state); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (c *Client) handleState(state gameState) error {
	pos, history, err := replayMoves(c.startpos, state.Moves)
	if err != nil {
		return err
	}
	c.history = history

	timeLeft, incr := state.WTime, state.WInc
	if pos.SideToMove == rules.Black {
		timeLeft, incr = state.BTime, state.BInc
	}

	best, _ := c.Engine.Play(*pos, history, timeLeft, incr)
	if best == rules.NullMove {
		return nil
	}
	return c.postMove(best)
}

// replayMoves rebuilds a Position and move history from a
// space-separated UCI move list, the same representation the text
// front-end's "position startpos moves ..." command carries.
func replayMoves(start *rules.Position, moves string) (*rules.Position, []rules.Move, error) {
	pos := *start
	var history []rules.Move
	var current string
	for _, ch := range moves + " " {
		if ch == ' ' {
			if current == "" {
				continue
			}
			m, ok := pos.MoveFromUCI(current)
			if !ok {
				return nil, nil, fmt.Errorf("online: illegal move in game stream: %s", current)
			}
			child, legal := pos.MakeMove(m)
			if !legal {
				return nil, nil, fmt.Errorf("online: illegal move in game stream: %s", current)
			}
			pos = child
			history = append(history, m)
			current = ""
			continue
		}
		current += string(ch)
	}
	return &pos, history, nil
}

func (c *Client) postMove(m rules.Move) error {
	body, err := json.Marshal(moveReport{Move: m.String()})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/bot/game/"+c.GameID+"/move/"+m.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("online: move post failed: %s: %s", resp.Status, respBody)
	}
	return nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}
}
