package streak

import (
	"context"
	"errors"
	"fmt"

	"github.com/besobot/besitos/internal/repos/streaks"
)

// CanClaim reports daily-claim eligibility without mutating anything. The
// answer is advisory; Claim re-validates inside its guarded write.
func (s *Service) CanClaim(ctx context.Context, accountID int64) (Eligibility, error) {
	rec, err := s.GetStreakInfo(ctx, accountID, streaks.CategoryDailyClaim)
	if err != nil {
		return Eligibility{}, err
	}

	now := s.now()

	if rec.LastEventDate != nil && sameUTCDay(*rec.LastEventDate, now) {
		nextMidnight := midnightUTC(now).AddDate(0, 0, 1)

		return Eligibility{Eligible: false, NextClaimIn: nextMidnight.Sub(now)}, nil
	}

	return Eligibility{Eligible: true}, nil
}

// GetStreakInfo returns the streak record for display, or a zero-value
// record for accounts with no history in the category.
func (s *Service) GetStreakInfo(ctx context.Context, accountID int64, category streaks.Category) (streaks.Record, error) {
	rec, err := s.streaks.Get(ctx, accountID, category)
	if err != nil {
		if errors.Is(err, streaks.ErrNoRecord) {
			return streaks.Record{AccountID: accountID, Category: category}, nil
		}

		return streaks.Record{}, fmt.Errorf("get streak info: %w", err)
	}

	return rec, nil
}
