// Package run implements the simulate tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexflint/go-arg"

	"github.com/toejough/doubleexamples/coinflip"
	"github.com/toejough/doubleexamples/forecast"
)

// Variables - Public

// ErrNegativeFlips is returned when --flips is below zero.
//
//nolint:gochecknoglobals // sentinel error
var ErrNegativeFlips = errors.New("--flips must not be negative")

// Functions - Public

// Run executes the simulate tool. It parses args (args[0] is the program
// name), flips a seeded coin, projects a linear profit forecast, and writes
// the results to stdout. It returns an error if the arguments are invalid.
func Run(args []string, stdout io.Writer) error {
	parsed, parser, err := parseArgs(args)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(stdout)

		return nil
	}

	if err != nil {
		return err
	}

	flips := coinflip.FlipCoins(coinflip.NewRand(parsed.Seed), parsed.Flips)
	counts := coinflip.Tally(flips)

	names := make([]string, len(flips))
	for i, flip := range flips {
		names[i] = flip.String()
	}

	fmt.Fprintf(stdout, "flips: %s\n", strings.Join(names, " "))
	fmt.Fprintf(stdout, "heads=%d tails=%d\n", counts.Heads, counts.Tails)

	forecaster := forecast.Linear{Slope: parsed.Slope, Intercept: parsed.Intercept}
	profits := forecast.ProfitOverTime(forecaster, parsed.Start, parsed.End)

	for i, profit := range profits {
		fmt.Fprintf(stdout, "t=%d profit=%g\n", parsed.Start+int32(i), profit) //nolint:gosec // i < end-start
	}

	return nil
}

// Structs - Private

// cliArgs defines the command-line arguments for the simulator.
type cliArgs struct {
	Seed      uint64  `arg:"--seed"      default:"1"  help:"seed for the coin's random source"`
	Flips     int     `arg:"--flips"     default:"10" help:"number of coin flips"`
	Start     int32   `arg:"--start"     default:"0"  help:"first forecast timestamp"`
	End       int32   `arg:"--end"       default:"5"  help:"forecast stops before this timestamp"`
	Slope     float64 `arg:"--slope"     default:"5"  help:"profit gained per timestamp"`
	Intercept float64 `arg:"--intercept" default:"1"  help:"profit at timestamp 0"`
}

// Functions - Private

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, *arg.Parser, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "simulate"}, &parsed)
	if err != nil {
		return cliArgs{}, nil, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if errors.Is(err, arg.ErrHelp) {
		return cliArgs{}, parser, err
	}

	if err != nil {
		return cliArgs{}, parser, fmt.Errorf("failed to parse arguments: %w", err)
	}

	if parsed.Flips < 0 {
		return cliArgs{}, parser, fmt.Errorf("%w: got %d", ErrNegativeFlips, parsed.Flips)
	}

	return parsed, parser, nil
}
