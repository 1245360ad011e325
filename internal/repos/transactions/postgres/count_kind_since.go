package transactions

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/besobot/besitos/internal/repos/transactions"
)

// CountKindSince runs inside the caller's transaction so daily-cap checks
// see their own uncommitted writes.
func (r *transactionsRepo) CountKindSince(tx *sql.Tx, accountID int64, kind transactions.Kind, since time.Time) (int64, error) {
	var n int64

	err := tx.QueryRow(`
		SELECT COUNT(*)
		FROM transactions
		WHERE account_id = $1
		  AND kind = $2
		  AND created_at >= $3
	`, accountID, kind, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s since %s: %w", kind, since.Format(time.RFC3339), err)
	}

	return n, nil
}
