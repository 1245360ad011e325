// Package streak implements the time-boxed reward-streak tracker: daily
// claim eligibility across UTC day boundaries, time-decaying bonuses
// credited through the wallet, and the nightly expiration sweep.
package streak

import (
	"database/sql"
	"errors"
	"time"

	"github.com/besobot/besitos/internal/repos/economy"
	"github.com/besobot/besitos/internal/repos/streaks"
	pgstreaks "github.com/besobot/besitos/internal/repos/streaks/postgres"
	"github.com/besobot/besitos/internal/services/wallet"
)

var ErrAlreadyClaimed = errors.New("already claimed today")

// ClaimResult is the reward breakdown returned to the caller for display.
type ClaimResult struct {
	Base          int64
	Bonus         int64
	Total         int64
	CurrentStreak int64
	LongestStreak int64
}

// Eligibility reports whether a claim is possible right now. When not,
// NextClaimIn is the time remaining until the next UTC midnight.
type Eligibility struct {
	Eligible    bool
	NextClaimIn time.Duration
}

type Service struct {
	db      *sql.DB
	streaks streaks.Streaks
	wallet  *wallet.Service
	economy economy.Provider

	now func() time.Time
}

func New(dbx *sql.DB, w *wallet.Service, econ economy.Provider) *Service {
	return &Service{
		db:      dbx,
		streaks: pgstreaks.New(dbx),
		wallet:  w,
		economy: econ,
		now:     time.Now,
	}
}

// bonusFor computes the streak bonus: linear in the streak length, capped.
func bonusFor(currentStreak int64, cfg economy.Config) int64 {
	bonus := currentStreak * cfg.BonusPerStreakDay
	if bonus > cfg.BonusCap {
		bonus = cfg.BonusCap
	}

	return bonus
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameUTCDay(a, b time.Time) bool {
	return midnightUTC(a).Equal(midnightUTC(b))
}
