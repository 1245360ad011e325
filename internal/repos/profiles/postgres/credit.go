package profiles

import (
	"database/sql"
	"fmt"

	"github.com/besobot/besitos/internal/repos/profiles"
)

// Credit adds amount to balance and total_earned in one atomic upsert,
// creating the profile on first credit. The increment happens inside the
// write itself, so concurrent credits never lose an update.
func (r *profilesRepo) Credit(tx *sql.Tx, accountID, amount int64) (profiles.Profile, error) {
	var p profiles.Profile

	err := tx.QueryRow(`
		INSERT INTO account_profiles (account_id, balance, total_earned, total_spent, level)
		VALUES ($1, $2, $2, 0, 1)
		ON CONFLICT (account_id) DO UPDATE
		SET balance      = account_profiles.balance + EXCLUDED.balance,
		    total_earned = account_profiles.total_earned + EXCLUDED.total_earned
		RETURNING account_id, balance, total_earned, total_spent, level
	`, accountID, amount).Scan(&p.AccountID, &p.Balance, &p.TotalEarned, &p.TotalSpent, &p.Level)
	if err != nil {
		return profiles.Profile{}, fmt.Errorf("credit profile: %w", err)
	}

	return p, nil
}
