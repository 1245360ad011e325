package wallet

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/besobot/besitos/internal/infra/metrics"
	"github.com/besobot/besitos/internal/infra/pgutils"
	"github.com/besobot/besitos/internal/repos/transactions"
)

// CreditReaction credits the configured per-reaction reward, capped by the
// daily activity limit. A per-account advisory lock serializes concurrent
// reactions, so the count always sees the previous writer's committed credit
// and the cap holds.
func (s *Service) CreditReaction(ctx context.Context, accountID int64, ref *uuid.UUID) (transactions.Record, error) {
	cfg, err := s.economy.Get(ctx)
	if err != nil {
		return transactions.Record{}, fmt.Errorf("read economy config: %w", err)
	}

	var rec transactions.Record

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// Without the lock two transactions could both count below the
		// limit, neither seeing the other's uncommitted row.
		if err := pgutils.AdvisoryXactLock(tx, accountID); err != nil {
			return err
		}

		n, err := s.txns.CountKindSince(tx, accountID, transactions.KindReactionEarn, midnightUTC(s.now()))
		if err != nil {
			return fmt.Errorf("count today's reactions: %w", err)
		}

		if n >= cfg.DailyActivityLimit {
			return ErrDailyLimitReached
		}

		rec, err = s.CreditTx(ctx, tx, Entry{
			AccountID: accountID,
			Amount:    cfg.ReactionReward,
			Kind:      transactions.KindReactionEarn,
			Reason:    "reaction reward",
			Ref:       ref,
		})

		return err
	})
	if err != nil {
		return transactions.Record{}, fmt.Errorf("credit reaction: %w", err)
	}

	metrics.CreditsTotal.WithLabelValues(string(transactions.KindReactionEarn)).Inc()

	return rec, nil
}
