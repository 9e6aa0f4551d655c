// Package main is the entry point for the amzpulse server.
package main

import (
	"os"

	"github.com/viraladmedia/amzpulse/cmd/amzpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
