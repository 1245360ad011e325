package profiles

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/besobot/besitos/internal/repos/profiles"
)

// Debit subtracts amount from balance, guarded by balance >= amount inside
// the write itself. When the conditional update matches no row, a follow-up
// read distinguishes a missing profile from insufficient funds; that read is
// used only for error classification, never to decide whether to proceed.
func (r *profilesRepo) Debit(tx *sql.Tx, accountID, amount int64) (profiles.Profile, error) {
	var p profiles.Profile

	err := tx.QueryRow(`
		UPDATE account_profiles
		SET balance     = balance - $2,
		    total_spent = total_spent + $2
		WHERE account_id = $1
		  AND balance >= $2
		RETURNING account_id, balance, total_earned, total_spent, level
	`, accountID, amount).Scan(&p.AccountID, &p.Balance, &p.TotalEarned, &p.TotalSpent, &p.Level)
	if err == nil {
		return p, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return profiles.Profile{}, fmt.Errorf("debit profile: %w", err)
	}

	var exists bool

	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM account_profiles WHERE account_id = $1)
	`, accountID).Scan(&exists)
	if err != nil {
		return profiles.Profile{}, fmt.Errorf("classify failed debit: %w", err)
	}

	if !exists {
		return profiles.Profile{}, profiles.ErrNoProfile
	}

	return profiles.Profile{}, profiles.ErrInsufficientFunds
}
