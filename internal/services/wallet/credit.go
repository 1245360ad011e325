package wallet

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/besobot/besitos/internal/infra/metrics"
	"github.com/besobot/besitos/internal/infra/pgutils"
	"github.com/besobot/besitos/internal/repos/transactions"
)

// Credit atomically adds besitos to an account, creating the profile on
// first use, and appends one audit transaction. The profile increment, the
// cached-level refresh, and the audit insert commit as a unit.
func (s *Service) Credit(ctx context.Context, e Entry) (transactions.Record, error) {
	var rec transactions.Record

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		rec, err = s.CreditTx(ctx, tx, e)

		return err
	})
	if err != nil {
		return transactions.Record{}, fmt.Errorf("credit: %w", err)
	}

	metrics.CreditsTotal.WithLabelValues(string(e.Kind)).Inc()

	return rec, nil
}

// CreditTx applies a credit inside the caller's transaction. The streak
// tracker uses it so a claim's streak write and its reward credit commit or
// roll back together.
func (s *Service) CreditTx(ctx context.Context, tx *sql.Tx, e Entry) (transactions.Record, error) {
	if e.Amount <= 0 {
		return transactions.Record{}, ErrInvalidAmount
	}

	if !earnKind(e.Kind) {
		return transactions.Record{}, fmt.Errorf("%w: %q is not an earn kind", ErrInvalidKind, e.Kind)
	}

	prof, err := s.profiles.Credit(tx, e.AccountID, e.Amount)
	if err != nil {
		return transactions.Record{}, fmt.Errorf("credit profile: %w", err)
	}

	lvl := s.levelFor(ctx, prof.TotalEarned)
	if lvl != prof.Level {
		err = s.profiles.SetLevel(tx, e.AccountID, lvl)
		if err != nil {
			return transactions.Record{}, fmt.Errorf("refresh level: %w", err)
		}
	}

	rec, err := s.txns.Insert(tx, transactions.Record{
		AccountID: e.AccountID,
		Amount:    e.Amount,
		Kind:      e.Kind,
		Reason:    e.Reason,
		Extra:     e.Extra,
		Ref:       e.Ref,
	})
	if err != nil {
		return transactions.Record{}, fmt.Errorf("insert transaction: %w", err)
	}

	return rec, nil
}
