package profiles

import (
	"context"
	"database/sql"
	"errors"
)

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrNoProfile = errors.New("no profile")

// Profile is the ledger-side account row. Balance is kept consistent with
// the lifetime totals by the storage layer: balance == total_earned - total_spent.
type Profile struct {
	AccountID   int64
	Balance     int64
	TotalEarned int64
	TotalSpent  int64
	Level       int64
}

type Profiles interface {
	Get(ctx context.Context, accountID int64) (Profile, error)
	Credit(tx *sql.Tx, accountID, amount int64) (Profile, error)
	Debit(tx *sql.Tx, accountID, amount int64) (Profile, error)
	SetLevel(tx *sql.Tx, accountID, level int64) error
}
