package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"mtgcards/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.New(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mtgcards: %v\n", err)
		stop()
		os.Exit(1)
	}
}
