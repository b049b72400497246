// Command dtserver answers date/time requests on three UDP ports, one per
// language: English, Te reo Māori and German, in that order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChexBB/dtp"
)

func main() {
	host := flag.String("host", "127.0.0.1", "address to bind the endpoints on")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-host addr] [-v] <english port> <maori port> <german port>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	bindings, err := dtp.Bindings(*host, flag.Args()...)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		flag.Usage()
		os.Exit(2)
	}

	server, err := dtp.New(bindings, dtp.LoggerOption(logger))
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down server...")
		cancel()
	}()

	for _, b := range bindings {
		logger.Info("serving language", "addr", b.Addr, "language", b.Language)
	}

	if err = server.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
