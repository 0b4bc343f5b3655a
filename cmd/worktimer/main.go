package main

import (
	"fmt"
	"os"

	"worktimer/internal/cli"
	"worktimer/internal/config"
	"worktimer/internal/storage"
	"worktimer/internal/tui"
)

// With no arguments worktimer opens the TUI; any argument routes to the
// one-shot CLI. Both run over the same data directory, so either side sees
// the other's writes.
func main() {
	manager, err := storage.NewManager()
	if err != nil {
		fail(err)
	}

	if len(os.Args) > 1 {
		if err := cli.SetupCommands(manager).Execute(); err != nil {
			fail(err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	if err := tui.Run(manager, cfg); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
