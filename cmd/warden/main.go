// Package main is the entry point for the warden CLI application.
// warden is an OAuth-issuing Git credential helper and per-repository
// Git identity profile manager.
package main

import (
	"os"

	"github.com/archmagece/warden"
	"github.com/archmagece/warden/cmd/warden/cmd"
)

func main() {
	os.Exit(cmd.Execute(warden.FullVersion()))
}
