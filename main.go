// Package main is the entry point for the makelift CLI.
package main

import "makelift.dev/pkg/makelift/cmd"

func main() {
	cmd.Execute()
}
