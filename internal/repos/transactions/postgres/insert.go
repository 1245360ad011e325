package transactions

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/besobot/besitos/internal/repos/transactions"
)

func (r *transactionsRepo) Insert(tx *sql.Tx, rec transactions.Record) (transactions.Record, error) {
	var extra []byte

	if rec.Extra != nil {
		b, err := json.Marshal(rec.Extra)
		if err != nil {
			return transactions.Record{}, fmt.Errorf("marshal extra: %w", err)
		}

		extra = b
	}

	var ref any
	if rec.Ref != nil {
		ref = *rec.Ref
	}

	err := tx.QueryRow(`
		INSERT INTO transactions (account_id, amount, kind, reason, extra, ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, rec.AccountID, rec.Amount, rec.Kind, rec.Reason, extra, ref).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return transactions.Record{}, transactions.ErrDuplicateTransaction
			}
		}

		return transactions.Record{}, fmt.Errorf("insert transaction: %w", err)
	}

	return rec, nil
}
