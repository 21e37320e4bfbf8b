// Command ledgerctl inspects and maintains the giveaway ledger offline, using
// the same backend configuration as ledgerd.
//
// Usage:
//
//	ledgerctl --stats     print statistics as JSON
//	ledgerctl --migrate   normalize the stored document and write it back
//	ledgerctl --export    print the draw list, one entry per line
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/tbourn/giveaway-ledger/internal/config"
	"github.com/tbourn/giveaway-ledger/internal/domain"
	"github.com/tbourn/giveaway-ledger/internal/ledger"
	"github.com/tbourn/giveaway-ledger/internal/storage"
	"github.com/tbourn/giveaway-ledger/internal/sysutil"
	"github.com/tbourn/giveaway-ledger/internal/tickets"
)

var errUsage = errors.New("exactly one of --stats, --migrate or --export is required")

func main() {
	_ = godotenv.Load()
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var stats, migrate, export bool

	flagSet := pflag.NewFlagSet("ledgerctl", pflag.ContinueOnError)
	flagSet.BoolVar(&stats, "stats", false, "print statistics as JSON")
	flagSet.BoolVar(&migrate, "migrate", false, "rewrite the stored document in the canonical format")
	flagSet.BoolVar(&export, "export", false, "print the draw list")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}
	selected := 0
	for _, on := range []bool{stats, migrate, export} {
		if on {
			selected++
		}
	}
	if selected != 1 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	store := storage.Open(ctx, cfg.Storage, cfg.GitSync)
	defer store.Close(ctx)

	switch {
	case stats:
		return printStats(ctx, readOnly{store}, stdout)
	case migrate:
		return migrateStore(ctx, store, stdout)
	default:
		return exportEntries(ctx, readOnly{store}, stdout)
	}
}

// readOnly serves the stored snapshot to the ledger and drops every save, so
// inspecting an empty store leaves it empty.
type readOnly struct {
	store *storage.Storage
}

func (r readOnly) Load(ctx context.Context) domain.Snapshot {
	snap, _ := r.store.Read(ctx)
	return snap
}

func (readOnly) Save(context.Context, domain.Snapshot) error { return nil }

func printStats(ctx context.Context, p ledger.Persister, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ledger.New(ctx, p).Statistics())
}

// migrateStore writes the normalized snapshot back to every backend.
func migrateStore(ctx context.Context, p ledger.Persister, w io.Writer) error {
	snap := p.Load(ctx)
	if err := p.Save(ctx, snap); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	_, err := fmt.Fprintf(w, "migrated %d participants\n", len(snap.Participants))
	return err
}

// exportEntries prints every participant's entries in ascending user id order.
func exportEntries(ctx context.Context, p ledger.Persister, w io.Writer) error {
	all := ledger.New(ctx, p).Participants()
	for _, id := range slices.Sorted(maps.Keys(all)) {
		if err := writeEntries(w, all[id]); err != nil {
			return err
		}
	}
	return nil
}

func writeEntries(w io.Writer, p domain.Participant) error {
	for _, line := range tickets.Entries(p.FirstName, p.LastName, p.Tickets) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
