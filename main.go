package main

import (
	"fmt"
	"os"

	"github.com/mozzadell/cc-optimizer/cmd/categories"
	"github.com/mozzadell/cc-optimizer/cmd/optimize"
	"github.com/mozzadell/cc-optimizer/cmd/root"
	"github.com/mozzadell/cc-optimizer/cmd/tui"
	"github.com/mozzadell/cc-optimizer/internal/config"
)

func init() {
	// 1. Load .env before anything reads the environment
	config.LoadEnv()

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(optimize.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(tui.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
