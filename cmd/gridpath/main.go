// Command gridpath solves ASCII grid maps and serves the grid editor API.
//
//	gridpath solve --map maze.txt --strategy astar --events
//	gridpath serve --addr :8080 --width 20 --height 12
//
// Settings come from flags, GRIDPATH_* environment variables (a .env file in
// the working directory is loaded first) and an optional --config file, in
// that order of precedence.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
