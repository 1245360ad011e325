package transactions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/besobot/besitos/internal/repos/transactions"
)

// List returns transactions newest-first. A nil kind means no filter.
func (r *transactionsRepo) List(ctx context.Context, accountID int64, kind *transactions.Kind, limit, offset int) ([]transactions.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, amount, kind, reason, extra, ref, created_at
		FROM transactions
		WHERE account_id = $1
		  AND ($2::text IS NULL OR kind = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`, accountID, kindArg(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var recs []transactions.Record

	for rows.Next() {
		var rec transactions.Record
		var extra []byte

		err = rows.Scan(&rec.ID, &rec.AccountID, &rec.Amount, &rec.Kind,
			&rec.Reason, &extra, &rec.Ref, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		if len(extra) > 0 {
			err = json.Unmarshal(extra, &rec.Extra)
			if err != nil {
				return nil, fmt.Errorf("unmarshal extra: %w", err)
			}
		}

		recs = append(recs, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return recs, nil
}

func (r *transactionsRepo) Count(ctx context.Context, accountID int64, kind *transactions.Kind) (int64, error) {
	var n int64

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM transactions
		WHERE account_id = $1
		  AND ($2::text IS NULL OR kind = $2)
	`, accountID, kindArg(kind)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}

	return n, nil
}

func kindArg(kind *transactions.Kind) any {
	if kind == nil {
		return nil
	}

	return string(*kind)
}
