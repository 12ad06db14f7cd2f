// Command billsplit prints the settlement for a bill described in JSON.
//
// The bill is read from a file (-f) or stdin. By default the split is
// calculated locally; with -addr it is sent to a running server.
//
//	billsplit -f dinner.json
//	billsplit -addr http://localhost:8080 -json < dinner.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/service"
	"github.com/mmynk/billsplit/internal/session"
	"github.com/mmynk/billsplit/internal/summary"
	"github.com/mmynk/billsplit/pkg/logging"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "billsplit:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("billsplit", flag.ContinueOnError)
	file := fs.String("f", "", "bill JSON file (default stdin)")
	addr := fs.String("addr", "", "server base URL; calculate locally when empty")
	asJSON := fs.Bool("json", false, "print the settlement as JSON instead of text")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout when using -addr")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logging.Setup(*logLevel, "text")

	snap, err := readSnapshot(*file, stdin)
	if err != nil {
		return err
	}

	if *addr != "" {
		ctx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		return runRemote(ctx, *addr, snap, *asJSON, stdout)
	}
	return runLocal(snap, *asJSON, stdout)
}

func readSnapshot(path string, stdin io.Reader) (session.Snapshot, error) {
	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return session.Snapshot{}, fmt.Errorf("failed to open bill: %w", err)
		}
		defer f.Close()
		r = f
	}

	var snap session.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return session.Snapshot{}, fmt.Errorf("failed to parse bill: %w", err)
	}
	return snap, nil
}

func runLocal(snap session.Snapshot, asJSON bool, stdout io.Writer) error {
	sess, err := session.FromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("invalid bill: %w", err)
	}

	if !asJSON {
		_, err := fmt.Fprintln(stdout, summary.Text(summary.ForSession(sess)))
		return err
	}

	return writeJSON(stdout, service.Settle(sess))
}

func runRemote(ctx context.Context, addr string, snap session.Snapshot, asJSON bool, stdout io.Writer) error {
	client := service.NewSplitServiceClient(http.DefaultClient, addr)

	if asJSON {
		resp, err := client.Calculate(ctx, connect.NewRequest(&service.CalculateRequest{Snapshot: snap}))
		if err != nil {
			return fmt.Errorf("calculate: %w", err)
		}
		return writeJSON(stdout, resp.Msg)
	}

	resp, err := client.ExportSummary(ctx, connect.NewRequest(&service.ExportSummaryRequest{Snapshot: snap}))
	if err != nil {
		return fmt.Errorf("export summary: %w", err)
	}
	_, err = fmt.Fprintln(stdout, resp.Msg.Text)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
