package root

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/calendar"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/config"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/state"
)

// newLogger writes structured logs to stderr so command output on stdout
// stays clean.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil)).With(slog.String("service", "starkhub"))
}

// openStore loads the full history document from the state server.
func openStore(ctx context.Context) (config.Config, *state.Client, *state.HistoryStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	client := state.NewClient(cfg.StateURL, newLogger())
	store, err := client.Load(ctx)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, client, store, nil
}

// resolveDate parses an optional YYYY-MM-DD argument, defaulting to today.
func resolveDate(args []string, idx int, now time.Time) (time.Time, error) {
	if len(args) <= idx {
		return calendar.Midnight(now), nil
	}
	return calendar.ParseKey(args[idx])
}
