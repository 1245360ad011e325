package streaks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNoRecord = errors.New("no streak record")
var ErrAlreadyRecorded = errors.New("already recorded today")

// Category is an independent axis of consecutive-day tracking.
// Categories do not share state.
type Category string

const (
	CategoryDailyClaim Category = "daily-claim"
	CategoryActivity   Category = "activity"
)

// Categories lists every tracked category; the expiration sweep walks them.
var Categories = []Category{CategoryDailyClaim, CategoryActivity}

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryDailyClaim, CategoryActivity:
		return c, nil
	default:
		return "", fmt.Errorf("unknown streak category %q", s)
	}
}

// Record tracks consecutive qualifying days for one (account, category).
// LongestStreak is a historical watermark and never decreases.
// LastEventDate is a UTC calendar date, nil until the first event.
type Record struct {
	AccountID     int64
	Category      Category
	CurrentStreak int64
	LongestStreak int64
	LastEventDate *time.Time
}

type Streaks interface {
	Get(ctx context.Context, accountID int64, category Category) (Record, error)
	Advance(tx *sql.Tx, accountID int64, category Category, today time.Time) (Record, error)
	ResetExpired(ctx context.Context, category Category, cutoff time.Time) (int64, error)
}
