// Package main is the entry point for the tldrgen CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/tldrgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
