// Package main is the entry point for the automark CLI.
package main

import "automark.dev/pkg/automark/cmd"

func main() {
	cmd.Execute()
}
