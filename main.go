// Package main is the entry point for the narrative CLI
package main

import (
	"os"

	"github.com/buffos/go-narrative/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
