// Package main is the entry point for the shakmat chess engine REPL.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kmoroz/shakmat/internal/config"
	"github.com/kmoroz/shakmat/internal/repl"
	"github.com/kmoroz/shakmat/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	startFEN := flag.String("fen", "", "Start from the given FEN instead of the initial position")
	verbose := flag.Bool("verbose", false, "Print search diagnostics after each ponder")
	flag.Parse()

	if *showVersion {
		fmt.Printf("shakmat %s\n", version.Version)
		fmt.Printf("Build date: %s\n", version.BuildDate)
		fmt.Printf("Git commit: %s\n", version.GitCommit)
		return
	}

	// Load configuration from ~/.shakmat/config.toml; defaults apply when
	// the file is missing or malformed.
	cfg := config.LoadConfig()

	r, err := repl.New(cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		r.SetSearchLogger(log.New(os.Stderr, "search: ", 0))
	}
	if *startFEN != "" {
		if err := r.SetFEN(*startFEN); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := r.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
