package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/besobot/besitos/internal/infra/metrics"
	"github.com/besobot/besitos/internal/infra/pgutils"
	"github.com/besobot/besitos/internal/repos/profiles"
	"github.com/besobot/besitos/internal/repos/transactions"
)

// Debit atomically removes besitos from an account and appends one audit
// transaction with a negative amount. The conditional balance guard in the
// storage layer is the sole protection against a negative balance; failures
// surface as profiles.ErrInsufficientFunds or profiles.ErrNoProfile.
func (s *Service) Debit(ctx context.Context, e Entry) (transactions.Record, error) {
	if e.Amount <= 0 {
		return transactions.Record{}, ErrInvalidAmount
	}

	if !spendKind(e.Kind) {
		return transactions.Record{}, fmt.Errorf("%w: %q is not a spend kind", ErrInvalidKind, e.Kind)
	}

	var rec transactions.Record

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := s.profiles.Debit(tx, e.AccountID, e.Amount)
		if err != nil {
			return fmt.Errorf("debit profile: %w", err)
		}

		rec, err = s.txns.Insert(tx, transactions.Record{
			AccountID: e.AccountID,
			Amount:    -e.Amount,
			Kind:      e.Kind,
			Reason:    e.Reason,
			Extra:     e.Extra,
			Ref:       e.Ref,
		})
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, profiles.ErrInsufficientFunds) {
			metrics.InsufficientFundsTotal.Inc()
		}

		return transactions.Record{}, fmt.Errorf("debit: %w", err)
	}

	metrics.DebitsTotal.WithLabelValues(string(e.Kind)).Inc()

	return rec, nil
}
