// Package main starts the browser-facing tabletop web front-end.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	webcmd "github.com/louisbranch/tabletop/internal/cmd/web"
)

func main() {
	log.SetPrefix("[WEB] ")
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := webcmd.ParseConfig(fs, os.Args[1:])
	switch {
	case errors.Is(err, flag.ErrHelp):
		return
	case err != nil:
		log.Printf("config: %v", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := webcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
