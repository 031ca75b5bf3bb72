// Package main is the entry point for the dionysius CLI.
package main

import (
	dionysius "github.com/archmagece/dionysius-go"
	"github.com/archmagece/dionysius-go/cmd/dionysius/cmd"
)

func main() {
	cmd.Execute(dionysius.ShortVersion())
}
