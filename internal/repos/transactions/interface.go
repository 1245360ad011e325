package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicateTransaction = errors.New("duplicate transaction")

// Kind is the business reason for a balance mutation.
type Kind string

const (
	KindReactionEarn    Kind = "reaction-earn"
	KindDailyClaimEarn  Kind = "daily-claim-earn"
	KindStreakBonusEarn Kind = "streak-bonus-earn"
	KindRewardEarn      Kind = "reward-earn"
	KindAdminEarn       Kind = "admin-earn"
	KindShopSpend       Kind = "shop-spend"
	KindAdminSpend      Kind = "admin-spend"
)

// EarnKinds and SpendKinds partition the taxonomy by transaction sign.
var EarnKinds = []Kind{KindReactionEarn, KindDailyClaimEarn, KindStreakBonusEarn, KindRewardEarn, KindAdminEarn}
var SpendKinds = []Kind{KindShopSpend, KindAdminSpend}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindReactionEarn, KindDailyClaimEarn, KindStreakBonusEarn,
		KindRewardEarn, KindAdminEarn, KindShopSpend, KindAdminSpend:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
}

// Record is one append-only audit row. Amount is signed: positive for
// credits, negative for debits. Ref is an optional caller-supplied
// idempotency key; replaying it fails with ErrDuplicateTransaction.
type Record struct {
	ID        int64
	AccountID int64
	Amount    int64
	Kind      Kind
	Reason    string
	Extra     map[string]any
	Ref       *uuid.UUID
	CreatedAt time.Time
}

type Transactions interface {
	Insert(tx *sql.Tx, rec Record) (Record, error)
	List(ctx context.Context, accountID int64, kind *Kind, limit, offset int) ([]Record, error)
	Count(ctx context.Context, accountID int64, kind *Kind) (int64, error)
	CountKindSince(tx *sql.Tx, accountID int64, kind Kind, since time.Time) (int64, error)
}
