// simulate flips a seeded coin and projects a linear profit forecast, using
// the same coinflip and forecast packages the example tests exercise.
// Run `simulate --help` for its flags.
package main

import (
	"fmt"
	"os"

	"github.com/toejough/doubleexamples/simulate/run"
)

// main is the entry point of the simulate tool.
func main() {
	err := run.Run(os.Args, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
