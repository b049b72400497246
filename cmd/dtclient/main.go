// Command dtclient asks a dtserver endpoint for the current date or time.
// It sends one request, waits one second for the answer and exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/ChexBB/dtp"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] <date|time> <host> <port>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	os.Exit(run(flag.Args(), logger, os.Stdout))
}

func run(args []string, logger *slog.Logger, out io.Writer) int {
	if len(args) != 3 {
		flag.Usage()
		return 2
	}

	kind, err := dtp.ParseRequestKind(args[0])
	if err != nil {
		logger.Error("invalid request kind", "error", err)
		return 2
	}
	port, err := dtp.ParsePort(args[2])
	if err != nil {
		logger.Error("invalid port", "error", err)
		return 2
	}

	client := dtp.NewClient(dtp.LoggerOption(logger))
	resp, err := client.Exchange(context.Background(), net.JoinHostPort(args[1], strconv.Itoa(port)), kind)
	switch {
	case errors.Is(err, dtp.ErrTimeout):
		fmt.Fprintln(out, "Timeout: no response within one second.")
		return 0
	case errors.Is(err, dtp.ErrProtocol):
		fmt.Fprintf(out, "Invalid packet: %v\n", err)
		return 1
	case err != nil:
		logger.Error("exchange failed", "error", err)
		return 1
	}

	report(out, resp)
	return 0
}

func report(w io.Writer, r dtp.Response) {
	fmt.Fprintln(w, "--------[Packet Information]--------")
	fmt.Fprintf(w, "Magic Number:  %#04x\n", r.Magic)
	fmt.Fprintf(w, "Packet Type:   %d (%s)\n", r.Type, r.Type)
	fmt.Fprintf(w, "Language Code: %d (%s)\n", r.Language, r.Language)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-----------[Current Time]-----------")
	fmt.Fprintf(w, "Year:   %d\n", r.Year)
	fmt.Fprintf(w, "Month:  %d\n", r.Month)
	fmt.Fprintf(w, "Day:    %d\n", r.Day)
	fmt.Fprintf(w, "Hour:   %d\n", r.Hour)
	fmt.Fprintf(w, "Minute: %d\n", r.Minute)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-------------[Message]--------------")
	fmt.Fprintf(w, "Length: %d\n", r.Length())
	fmt.Fprintf(w, "Text:   %s\n", r.Text)
}
