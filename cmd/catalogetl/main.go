package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/catalogetl/catalogetl/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
