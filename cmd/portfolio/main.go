package main

import (
	"context"
	"flag"
	"os"

	"holdings/internal/config"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if cfg, err := config.Load(); err == nil {
		lvl, _ := cfg.Level()
		logger.SetLevel(lvl)
	} else {
		logger.Warnf("config: %v", err)
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&demoCmd{log: logger}, "")
	subcommands.Register(&runCmd{log: logger}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
