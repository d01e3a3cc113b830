// Package main provides the entry point for the gridsweep CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/raphaelgruber/gridsweep/internal/cli"
)

func main() {
	// Optional .env next to the save files; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrDegraded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
