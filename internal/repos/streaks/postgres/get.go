package streaks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/besobot/besitos/internal/repos/streaks"
)

func (r *streaksRepo) Get(ctx context.Context, accountID int64, category streaks.Category) (streaks.Record, error) {
	rec := streaks.Record{AccountID: accountID, Category: category}

	err := r.db.QueryRowContext(ctx, `
		SELECT current_streak, longest_streak, last_event_date
		FROM streak_records
		WHERE account_id = $1
		  AND category = $2
	`, accountID, category).Scan(&rec.CurrentStreak, &rec.LongestStreak, &rec.LastEventDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return streaks.Record{}, streaks.ErrNoRecord
		}

		return streaks.Record{}, fmt.Errorf("get streak: %w", err)
	}

	return rec, nil
}
