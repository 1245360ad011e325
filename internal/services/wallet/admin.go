package wallet

import (
	"context"

	"github.com/besobot/besitos/internal/repos/transactions"
)

// AdminCredit grants besitos on behalf of an administrator. The transaction
// is tagged admin-earn and the acting admin is stamped into extra for audit.
func (s *Service) AdminCredit(ctx context.Context, accountID, amount int64, reason string, adminID int64) (transactions.Record, error) {
	return s.Credit(ctx, Entry{
		AccountID: accountID,
		Amount:    amount,
		Kind:      transactions.KindAdminEarn,
		Reason:    reason,
		Extra:     map[string]any{"admin_id": adminID, "action": "admin-credit"},
	})
}

// AdminDebit removes besitos on behalf of an administrator. The
// insufficient-funds guard applies exactly as for a regular debit.
func (s *Service) AdminDebit(ctx context.Context, accountID, amount int64, reason string, adminID int64) (transactions.Record, error) {
	return s.Debit(ctx, Entry{
		AccountID: accountID,
		Amount:    amount,
		Kind:      transactions.KindAdminSpend,
		Reason:    reason,
		Extra:     map[string]any{"admin_id": adminID, "action": "admin-debit"},
	})
}
