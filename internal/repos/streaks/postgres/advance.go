package streaks

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/besobot/besitos/internal/repos/streaks"
)

// Advance moves the streak to today in one guarded upsert: consecutive-day
// increment when the previous event was yesterday, reset to 1 otherwise.
// The WHERE clause conditions the write on the previous last_event_date, the
// same shape as the balance debit guard, so two same-day calls cannot both
// pass; the loser gets ErrAlreadyRecorded.
func (r *streaksRepo) Advance(tx *sql.Tx, accountID int64, category streaks.Category, today time.Time) (streaks.Record, error) {
	rec := streaks.Record{AccountID: accountID, Category: category}

	err := tx.QueryRow(`
		INSERT INTO streak_records (account_id, category, current_streak, longest_streak, last_event_date)
		VALUES ($1, $2, 1, 1, $3)
		ON CONFLICT (account_id, category) DO UPDATE
		SET current_streak = CASE
		        WHEN streak_records.last_event_date = EXCLUDED.last_event_date - 1
		            THEN streak_records.current_streak + 1
		        ELSE 1
		    END,
		    longest_streak = GREATEST(streak_records.longest_streak, CASE
		        WHEN streak_records.last_event_date = EXCLUDED.last_event_date - 1
		            THEN streak_records.current_streak + 1
		        ELSE 1
		    END),
		    last_event_date = EXCLUDED.last_event_date
		WHERE streak_records.last_event_date IS DISTINCT FROM EXCLUDED.last_event_date
		RETURNING current_streak, longest_streak, last_event_date
	`, accountID, category, today).Scan(&rec.CurrentStreak, &rec.LongestStreak, &rec.LastEventDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return streaks.Record{}, streaks.ErrAlreadyRecorded
		}

		return streaks.Record{}, fmt.Errorf("advance streak: %w", err)
	}

	return rec, nil
}
