// Command chessbot-online plays one game against an online play
// service's NDJSON game stream, given the service's base URL, a game
// ID, and an API token on the command line.
package main

import (
	"fmt"
	"os"

	"github.com/funnsam/chessbot/engine"
	"github.com/funnsam/chessbot/protocol/online"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: chessbot-online <base-url> <game-id> <auth-token>")
		os.Exit(2)
	}

	eng := engine.New()
	eng.NewGame()

	client := online.New(os.Args[1], os.Args[2], os.Args[3], eng)
	if err := client.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "chessbot-online:", err)
		os.Exit(1)
	}
}
