package main

import (
	"os"

	"box2d-shapes/internal/cli"
	"box2d-shapes/internal/logging"
)

// main is the entry point for the box2dshapes CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
