// Package main is the entry point for the apulse CLI client.
package main

import (
	"github.com/viraladmedia/amzpulse/cmd/apulse/cmd"
)

func main() {
	cmd.Execute()
}
