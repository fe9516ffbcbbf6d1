package main

import (
	"os"

	"github.com/spendtrack-dev/spendtrack/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
