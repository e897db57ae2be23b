// Package quadlens provides the command-line interface for the quadlens
// analyzer. It configures subcommands (analyze, status), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/quadlens/quadlens/cmd/quadlens"
//	func main() { quadlens.Execute() }
package quadlens
