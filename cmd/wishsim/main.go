package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/xtding233/wishsim/internal/cli"
)

func main() {
	fs := flag.NewFlagSet("wishsim", flag.ContinueOnError)
	cfg, err := cli.ParseConfig(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		cli.Exitf("wishsim: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		cli.Exitf("wishsim: %v", err)
	}
}
