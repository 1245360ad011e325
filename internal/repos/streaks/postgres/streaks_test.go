package streaks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/besobot/besitos/internal/infra/pgtestutil"
	"github.com/besobot/besitos/internal/repos/streaks"
)

var day = 24 * time.Hour

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedStreak(t *testing.T, db *sql.DB, id int64, cat streaks.Category, current, longest int64, lastEvent time.Time) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO streak_records (account_id, category, current_streak, longest_streak, last_event_date)
		VALUES ($1, $2, $3, $4, $5)
	`, id, cat, current, longest, lastEvent)
	if err != nil {
		t.Fatalf("seed streak(%d, %s): %v", id, cat, err)
	}
}

func advance(t *testing.T, db *sql.DB, repo *streaksRepo, id int64, cat streaks.Category, today time.Time) (streaks.Record, error) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	rec, err := repo.Advance(tx, id, cat, today)
	if err != nil {
		_ = tx.Rollback()
		return streaks.Record{}, err
	}

	if cerr := tx.Commit(); cerr != nil {
		t.Fatalf("commit: %v", cerr)
	}

	return rec, nil
}

func TestStreaks_Advance(t *testing.T) {
	t.Parallel()

	today := utcDate(2024, time.March, 15)

	type tc struct {
		name        string
		seed        func(db *sql.DB, t *testing.T)
		wantErr     error
		wantCurrent int64
		wantLongest int64
	}

	const accountID = int64(21)

	tests := []tc{
		{
			name:        "first_event_starts_at_one",
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name: "consecutive_day_increments",
			seed: func(db *sql.DB, t *testing.T) {
				seedStreak(t, db, accountID, streaks.CategoryDailyClaim, 4, 6, today.Add(-day))
			},
			wantCurrent: 5,
			wantLongest: 6,
		},
		{
			name: "new_high_watermark",
			seed: func(db *sql.DB, t *testing.T) {
				seedStreak(t, db, accountID, streaks.CategoryDailyClaim, 6, 6, today.Add(-day))
			},
			wantCurrent: 7,
			wantLongest: 7,
		},
		{
			name: "missed_day_resets_to_one",
			seed: func(db *sql.DB, t *testing.T) {
				seedStreak(t, db, accountID, streaks.CategoryDailyClaim, 9, 9, today.Add(-2*day))
			},
			wantCurrent: 1,
			wantLongest: 9,
		},
		{
			name: "same_day_rejected",
			seed: func(db *sql.DB, t *testing.T) {
				seedStreak(t, db, accountID, streaks.CategoryDailyClaim, 3, 3, today)
			},
			wantErr: streaks.ErrAlreadyRecorded,
		},
		{
			name: "swept_record_restarts_at_one",
			seed: func(db *sql.DB, t *testing.T) {
				// current_streak zeroed by the sweep, last event long ago
				seedStreak(t, db, accountID, streaks.CategoryDailyClaim, 0, 12, today.Add(-30*day))
			},
			wantCurrent: 1,
			wantLongest: 12,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			if tt.seed != nil {
				tt.seed(db, t)
			}

			repo := New(db)

			rec, err := advance(t, db, repo, accountID, streaks.CategoryDailyClaim, today)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("advance: %v", err)
			}

			if rec.CurrentStreak != tt.wantCurrent {
				t.Errorf("current_streak: want %d, got %d", tt.wantCurrent, rec.CurrentStreak)
			}
			if rec.LongestStreak != tt.wantLongest {
				t.Errorf("longest_streak: want %d, got %d", tt.wantLongest, rec.LongestStreak)
			}
		})
	}
}

func TestStreaks_Advance_CategoriesIndependent(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	today := utcDate(2024, time.July, 1)

	_, err := advance(t, db, repo, 22, streaks.CategoryDailyClaim, today)
	if err != nil {
		t.Fatalf("advance daily-claim: %v", err)
	}

	// Same account, same day, other category still starts fresh.
	rec, err := advance(t, db, repo, 22, streaks.CategoryActivity, today)
	if err != nil {
		t.Fatalf("advance activity: %v", err)
	}

	if rec.CurrentStreak != 1 {
		t.Errorf("want activity streak 1, got %d", rec.CurrentStreak)
	}
}

func TestStreaks_ResetExpired(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	cutoff := utcDate(2024, time.May, 10)

	seedStreak(t, db, 31, streaks.CategoryDailyClaim, 5, 8, cutoff.Add(-day))  // stale, reset
	seedStreak(t, db, 32, streaks.CategoryDailyClaim, 2, 2, cutoff)            // at cutoff, keep
	seedStreak(t, db, 33, streaks.CategoryDailyClaim, 0, 4, cutoff.Add(-day))  // already zero
	seedStreak(t, db, 31, streaks.CategoryActivity, 3, 3, cutoff.Add(-2*day))  // other category

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	n, err := repo.ResetExpired(ctx, streaks.CategoryDailyClaim, cutoff)
	if err != nil {
		t.Fatalf("reset expired: %v", err)
	}

	if n != 1 {
		t.Fatalf("want 1 reset, got %d", n)
	}

	rec, err := repo.Get(ctx, 31, streaks.CategoryDailyClaim)
	if err != nil {
		t.Fatalf("get 31: %v", err)
	}

	if rec.CurrentStreak != 0 {
		t.Errorf("want reset to 0, got %d", rec.CurrentStreak)
	}
	if rec.LongestStreak != 8 {
		t.Errorf("longest must survive the sweep: want 8, got %d", rec.LongestStreak)
	}

	rec, err = repo.Get(ctx, 32, streaks.CategoryDailyClaim)
	if err != nil {
		t.Fatalf("get 32: %v", err)
	}

	if rec.CurrentStreak != 2 {
		t.Errorf("record at the cutoff must not be swept: want 2, got %d", rec.CurrentStreak)
	}

	// Other category untouched by a daily-claim sweep.
	rec, err = repo.Get(ctx, 31, streaks.CategoryActivity)
	if err != nil {
		t.Fatalf("get 31 activity: %v", err)
	}

	if rec.CurrentStreak != 3 {
		t.Errorf("activity streak must be untouched: want 3, got %d", rec.CurrentStreak)
	}

	// Idempotence: a second pass finds nothing.
	n, err = repo.ResetExpired(ctx, streaks.CategoryDailyClaim, cutoff)
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}

	if n != 0 {
		t.Errorf("second pass must reset nothing, got %d", n)
	}
}

func TestStreaks_Get_NoRecord(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	_, err := repo.Get(ctx, 999, streaks.CategoryDailyClaim)
	if !errors.Is(err, streaks.ErrNoRecord) {
		t.Fatalf("want ErrNoRecord, got %v", err)
	}
}
