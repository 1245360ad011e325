package streak

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/besobot/besitos/internal/infra/metrics"
	"github.com/besobot/besitos/internal/infra/pgutils"
	"github.com/besobot/besitos/internal/repos/streaks"
	"github.com/besobot/besitos/internal/repos/transactions"
	"github.com/besobot/besitos/internal/services/wallet"
)

// Claim advances the daily-claim streak and credits the reward in a single
// database transaction. Eligibility is enforced by the guarded streak write
// itself, not by a prior read, so two simultaneous claims cannot both pass;
// and if the wallet credit fails, the streak advance rolls back with it.
func (s *Service) Claim(ctx context.Context, accountID int64) (ClaimResult, error) {
	cfg, err := s.economy.Get(ctx)
	if err != nil {
		return ClaimResult{}, fmt.Errorf("read economy config: %w", err)
	}

	today := midnightUTC(s.now())

	var res ClaimResult

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		rec, err := s.streaks.Advance(tx, accountID, streaks.CategoryDailyClaim, today)
		if err != nil {
			if errors.Is(err, streaks.ErrAlreadyRecorded) {
				return ErrAlreadyClaimed
			}

			return fmt.Errorf("advance streak: %w", err)
		}

		bonus := bonusFor(rec.CurrentStreak, cfg)
		total := cfg.DailyBaseReward + bonus

		_, err = s.wallet.CreditTx(ctx, tx, wallet.Entry{
			AccountID: accountID,
			Amount:    total,
			Kind:      transactions.KindDailyClaimEarn,
			Reason:    "daily claim reward",
			Extra: map[string]any{
				"base":   cfg.DailyBaseReward,
				"bonus":  bonus,
				"streak": rec.CurrentStreak,
			},
		})
		if err != nil {
			return fmt.Errorf("credit claim reward: %w", err)
		}

		res = ClaimResult{
			Base:          cfg.DailyBaseReward,
			Bonus:         bonus,
			Total:         total,
			CurrentStreak: rec.CurrentStreak,
			LongestStreak: rec.LongestStreak,
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyClaimed) {
			metrics.DuplicateClaimsTotal.Inc()
		}

		return ClaimResult{}, fmt.Errorf("claim: %w", err)
	}

	metrics.ClaimsTotal.Inc()
	metrics.CreditsTotal.WithLabelValues(string(transactions.KindDailyClaimEarn)).Inc()

	return res, nil
}
