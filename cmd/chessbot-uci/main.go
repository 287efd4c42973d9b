// Command chessbot-uci runs the engine behind the UCI text protocol
// for GUIs and command-line tournament managers.
package main

import (
	"github.com/funnsam/chessbot/engine"
	"github.com/funnsam/chessbot/protocol/uci"
)

func main() {
	eng := engine.New()
	eng.NewGame()
	uci.New(eng).Run()
}
