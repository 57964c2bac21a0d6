package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/slab/cli"
	"github.com/ardnew/slab/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // errors implementing slog.LogValuer expand into groups
		os.Exit(1)
	}
}
