// Package main is the entry point for the forge CLI and server.
package main

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	Execute()
}
