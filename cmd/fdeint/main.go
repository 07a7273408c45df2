// Package main provides the fdeint command line solver.
package main

const version = "v0.1.0-dev"

func main() {
	Execute()
}
