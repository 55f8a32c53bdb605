package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bizdoc/internal/app"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, "", os.Stderr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, version)
}
