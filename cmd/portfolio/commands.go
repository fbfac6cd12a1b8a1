package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"holdings/internal/operations"
	"holdings/internal/portfolio"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

type demoCmd struct {
	log *logrus.Logger
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "run the buy/sell walkthrough and print the portfolio" }
func (*demoCmd) Usage() string {
	return `portfolio demo

  Buys ABC and XYZ, sells part of ABC and all of XYZ, printing the portfolio after each step.
`
}
func (*demoCmd) SetFlags(*flag.FlagSet) {}

func (c *demoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := operations.Demo(portfolio.New(os.Stdout, c.log), c.log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// runCmd replays an operations script.
type runCmd struct {
	log    *logrus.Logger
	file   string
	strict bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "replay a buy/sell script against an empty portfolio" }
func (*runCmd) Usage() string {
	return `portfolio run [-f <script>] [-strict]

  Reads one operation per line from the script (stdin when -f is absent):
    buy <symbol> <price> <quantity>
    sell <symbol> <quantity>
    print
  Blank lines and lines starting with # are ignored. The portfolio is printed at the end.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "path to the script file, stdin when empty")
	f.BoolVar(&c.strict, "strict", false, "exit with failure when any trade was rejected")
}

func (c *runCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var in io.Reader = os.Stdin
	if c.file != "" {
		f, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			return subcommands.ExitUsageError
		}
		defer f.Close()
		in = f
	}

	steps, err := operations.Parse(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing script: %v\n", err)
		return subcommands.ExitUsageError
	}

	p := portfolio.New(os.Stdout, c.log)
	rejected, err := operations.NewRunner(operations.Default(), c.log).Run(p, steps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	p.Print()

	if c.strict && rejected > 0 {
		fmt.Fprintf(os.Stderr, "%d trade(s) rejected\n", rejected)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
