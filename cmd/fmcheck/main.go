// Package main is the entry point for the fmcheck pre-commit hook.
package main

import (
	"os"

	"github.com/thoreinstein/fmcheck/cmd/fmcheck/commands"
)

func main() {
	os.Exit(commands.Execute())
}
