package main

import (
	"os"

	"github.com/wonny/grq-validation/cmd/grq/commands"
)

// main is the entry point for the GRQ validation CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/grq [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
