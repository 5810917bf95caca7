// Package main runs an interactive terminal client for codenames games.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

const releaseVersion = "1.0.0"

// main runs the client until the player quits or the input ends.
func main() {
	log.SetFlags(0)
	f := new(flags)
	cmd := newCmd(f, os.Stdin, os.Stdout)
	cobra.CheckErr(cmd.Execute())
}
