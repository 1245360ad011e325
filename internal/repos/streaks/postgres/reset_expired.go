package streaks

import (
	"context"
	"fmt"
	"time"

	"github.com/besobot/besitos/internal/repos/streaks"
)

// ResetExpired zeroes current_streak for every record in the category whose
// last event is strictly before cutoff. longest_streak is untouched. The
// statement matches nothing on a repeat run, so the sweep is idempotent.
func (r *streaksRepo) ResetExpired(ctx context.Context, category streaks.Category, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE streak_records
		SET current_streak = 0
		WHERE category = $1
		  AND current_streak > 0
		  AND last_event_date < $2
	`, category, cutoff)
	if err != nil {
		return 0, fmt.Errorf("reset expired streaks: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return affected, nil
}
