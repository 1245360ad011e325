package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/besobot/besitos/internal/repos/profiles"
)

func (r *profilesRepo) Get(ctx context.Context, accountID int64) (profiles.Profile, error) {
	var p profiles.Profile

	err := r.db.QueryRowContext(ctx, `
		SELECT account_id, balance, total_earned, total_spent, level
		FROM account_profiles
		WHERE account_id = $1
	`, accountID).Scan(&p.AccountID, &p.Balance, &p.TotalEarned, &p.TotalSpent, &p.Level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profiles.Profile{}, profiles.ErrNoProfile
		}

		return profiles.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return p, nil
}
