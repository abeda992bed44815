package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ManuGH/dagskra/internal/config"
	"github.com/ManuGH/dagskra/internal/daemon"
	"github.com/ManuGH/dagskra/internal/epg"
	xglog "github.com/ManuGH/dagskra/internal/log"
	"github.com/ManuGH/dagskra/internal/version"
)

// nowFunc is the clock used for the heading of an empty schedule.
var nowFunc = time.Now

func newFetchCmd(configPath *string, stdout, stderr io.Writer) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the schedule once and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Logs go to stderr so stdout stays machine-readable.
			xglog.Configure(xglog.Config{Level: "warn", Output: stderr, Version: version.Version})

			cfg, err := config.NewLoader(*configPath, version.Version).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Upstream.Timeout)
			defer cancel()

			sched, err := daemon.NewFetcher(cfg).FetchSchedule(ctx)
			if err != nil {
				return fmt.Errorf("fetch schedule: %w", err)
			}

			if asJSON {
				return writeJSON(stdout, sched)
			}
			return writeText(stdout, sched)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print listings in the upstream wire format")
	return cmd
}

func writeJSON(w io.Writer, sched epg.Schedule) error {
	if sched == nil {
		sched = epg.Schedule{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(sched)
}

// writeText prints one line per listing: time, status tag, title, then the
// description indented on the next line when present.
func writeText(w io.Writer, sched epg.Schedule) error {
	if _, err := fmt.Fprintf(w, "%s\n", sched.Today(nowFunc())); err != nil {
		return err
	}
	for _, l := range sched {
		tag := ""
		switch l.Status() {
		case epg.StatusLive:
			tag = " [bein útsending]"
		case epg.StatusRepeat:
			tag = " [endursýnt]"
		}
		if _, err := fmt.Fprintf(w, "%s  %s%s\n", l.Time(), l.Title(), tag); err != nil {
			return err
		}
		if l.HasDescription() {
			if _, err := fmt.Fprintf(w, "       %s\n", l.Description()); err != nil {
				return err
			}
		}
	}
	return nil
}
