// main package for logtidy command-line tool
// Package main is the entry point for the logtidy CLI.
package main

import "github.com/metaneutrons/logtidy/cmd"

func main() {
	cmd.Execute()
}
