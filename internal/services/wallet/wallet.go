// Package wallet implements the besitos ledger: atomic credit/debit with a
// full audit trail, history queries, and progression-level computation.
package wallet

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/besobot/besitos/internal/repos/economy"
	"github.com/besobot/besitos/internal/repos/profiles"
	pgprofiles "github.com/besobot/besitos/internal/repos/profiles/postgres"
	"github.com/besobot/besitos/internal/repos/transactions"
	pgtransactions "github.com/besobot/besitos/internal/repos/transactions/postgres"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidKind       = errors.New("invalid transaction kind")
	ErrDailyLimitReached = errors.New("daily activity limit reached")
)

// Entry describes one requested balance mutation. Amount is always positive;
// Credit and Debit decide the sign of the recorded transaction. Ref is an
// optional idempotency key.
type Entry struct {
	AccountID int64
	Amount    int64
	Kind      transactions.Kind
	Reason    string
	Extra     map[string]any
	Ref       *uuid.UUID
}

type Service struct {
	db       *sql.DB
	profiles profiles.Profiles
	txns     transactions.Transactions
	economy  economy.Provider

	now func() time.Time
}

func New(dbx *sql.DB, econ economy.Provider) *Service {
	return &Service{
		db:       dbx,
		profiles: pgprofiles.New(dbx),
		txns:     pgtransactions.New(dbx),
		economy:  econ,
		now:      time.Now,
	}
}

func earnKind(k transactions.Kind) bool {
	for _, ek := range transactions.EarnKinds {
		if k == ek {
			return true
		}
	}

	return false
}

func spendKind(k transactions.Kind) bool {
	for _, sk := range transactions.SpendKinds {
		if k == sk {
			return true
		}
	}

	return false
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
