package streak

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/besobot/besitos/internal/infra/metrics"
	"github.com/besobot/besitos/internal/repos/streaks"
	pgstreaks "github.com/besobot/besitos/internal/repos/streaks/postgres"
)

// Sweeper resets streaks for accounts that missed a full day. A record whose
// last event was yesterday is still continuable and is left alone; only
// records at least two days stale are zeroed, so re-running a pass changes
// nothing.
type Sweeper struct {
	streaks streaks.Streaks
	now     func() time.Time
}

func NewSweeper(dbx *sql.DB) *Sweeper {
	return &Sweeper{streaks: pgstreaks.New(dbx), now: time.Now}
}

// Sweep runs one pass over every streak category and returns the total
// number of streaks reset.
func (w *Sweeper) Sweep(ctx context.Context) (int64, error) {
	runID := uuid.New()

	// A streak breaks only after a whole day without an event, so records
	// from yesterday are still alive at the midnight run.
	cutoff := midnightUTC(w.now()).AddDate(0, 0, -1)

	var total int64

	for _, cat := range streaks.Categories {
		n, err := w.streaks.ResetExpired(ctx, cat, cutoff)
		if err != nil {
			return total, fmt.Errorf("sweep %s: %w", cat, err)
		}

		metrics.SweepResetsTotal.WithLabelValues(string(cat)).Add(float64(n))

		total += n

		slog.Info("expiration sweep pass", "run_id", runID, "category", cat, "reset", n)
	}

	return total, nil
}

// Run executes Sweep on a fixed interval until ctx is canceled. A failed
// pass is logged and retried on the next tick; the sweep is idempotent, so
// overlap with a manual run is harmless.
func (w *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, err := w.Sweep(ctx)
			if err != nil {
				slog.Error("expiration sweep failed", "error", err)
			}
		}
	}
}
