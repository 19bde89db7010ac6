package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/icare/internal/buildinfo"
	"github.com/dmitrijs2005/icare/internal/client/cli"
	"github.com/dmitrijs2005/icare/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	// The REPL blocks on stdin, so a signal cannot end it by cancelling
	// ctx alone.
	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			stop()
			log.Println("interrupted, shutting down")
			_ = app.Close()
			os.Exit(1)
		case <-finished:
		}
	}()

	app.Run(ctx)
	close(finished)
}
