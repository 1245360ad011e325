package transactions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/besobot/besitos/internal/infra/pgtestutil"
	"github.com/besobot/besitos/internal/repos/transactions"
)

func seedAccount(t *testing.T, db *sql.DB, id int64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO account_profiles (account_id, balance, total_earned, total_spent)
		VALUES ($1, 0, 0, 0)
		ON CONFLICT (account_id) DO NOTHING
	`, id)
	if err != nil {
		t.Fatalf("seed account(%d): %v", id, err)
	}
}

func insert(t *testing.T, db *sql.DB, repo *transactionsRepo, rec transactions.Record) transactions.Record {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	out, err := repo.Insert(tx, rec)
	if err != nil {
		_ = tx.Rollback()
		t.Fatalf("insert: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	return out
}

func TestTransactions_Insert(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(t, db, 11)

	repo := New(db)

	rec := insert(t, db, repo, transactions.Record{
		AccountID: 11,
		Amount:    42,
		Kind:      transactions.KindReactionEarn,
		Reason:    "nice message",
		Extra:     map[string]any{"message_id": "m-1"},
	})

	if rec.ID == 0 {
		t.Error("want generated id")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("want created_at set")
	}
}

func TestTransactions_Insert_DuplicateRef(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(t, db, 12)

	repo := New(db)
	ref := uuid.New()

	insert(t, db, repo, transactions.Record{
		AccountID: 12,
		Amount:    10,
		Kind:      transactions.KindRewardEarn,
		Ref:       &ref,
	})

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = repo.Insert(tx, transactions.Record{
		AccountID: 12,
		Amount:    10,
		Kind:      transactions.KindRewardEarn,
		Ref:       &ref,
	})
	if !errors.Is(err, transactions.ErrDuplicateTransaction) {
		t.Fatalf("want ErrDuplicateTransaction, got %v", err)
	}
}

func TestTransactions_ListAndCount(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(t, db, 13)
	seedAccount(t, db, 14)

	repo := New(db)

	// Three for account 13 (two reaction, one shop), one for account 14.
	insert(t, db, repo, transactions.Record{AccountID: 13, Amount: 5, Kind: transactions.KindReactionEarn})
	insert(t, db, repo, transactions.Record{AccountID: 13, Amount: 7, Kind: transactions.KindReactionEarn})
	insert(t, db, repo, transactions.Record{AccountID: 13, Amount: -3, Kind: transactions.KindShopSpend})
	insert(t, db, repo, transactions.Record{AccountID: 14, Amount: 9, Kind: transactions.KindAdminEarn})

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	t.Run("newest_first", func(t *testing.T) {
		recs, err := repo.List(ctx, 13, nil, 10, 0)
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		if len(recs) != 3 {
			t.Fatalf("want 3 records, got %d", len(recs))
		}

		if recs[0].Kind != transactions.KindShopSpend {
			t.Errorf("want newest first, got kind %s", recs[0].Kind)
		}

		for i := 1; i < len(recs); i++ {
			if recs[i-1].ID < recs[i].ID {
				t.Errorf("records out of order at %d", i)
			}
		}
	})

	t.Run("kind_filter", func(t *testing.T) {
		kind := transactions.KindReactionEarn

		recs, err := repo.List(ctx, 13, &kind, 10, 0)
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		if len(recs) != 2 {
			t.Fatalf("want 2 reaction records, got %d", len(recs))
		}

		n, err := repo.Count(ctx, 13, &kind)
		if err != nil {
			t.Fatalf("count: %v", err)
		}

		if n != 2 {
			t.Errorf("want count 2, got %d", n)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		recs, err := repo.List(ctx, 13, nil, 2, 2)
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		if len(recs) != 1 {
			t.Fatalf("want 1 record on last page, got %d", len(recs))
		}

		n, err := repo.Count(ctx, 13, nil)
		if err != nil {
			t.Fatalf("count: %v", err)
		}

		if n != 3 {
			t.Errorf("want total 3, got %d", n)
		}
	})

	t.Run("other_account_isolated", func(t *testing.T) {
		n, err := repo.Count(ctx, 14, nil)
		if err != nil {
			t.Fatalf("count: %v", err)
		}

		if n != 1 {
			t.Errorf("want 1, got %d", n)
		}
	})
}

func TestTransactions_CountKindSince(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedAccount(t, db, 15)

	repo := New(db)

	insert(t, db, repo, transactions.Record{AccountID: 15, Amount: 5, Kind: transactions.KindReactionEarn})
	insert(t, db, repo, transactions.Record{AccountID: 15, Amount: 5, Kind: transactions.KindReactionEarn})
	insert(t, db, repo, transactions.Record{AccountID: 15, Amount: 20, Kind: transactions.KindDailyClaimEarn})

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	n, err := repo.CountKindSince(tx, 15, transactions.KindReactionEarn, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("count since: %v", err)
	}

	if n != 2 {
		t.Errorf("want 2 recent reactions, got %d", n)
	}

	n, err = repo.CountKindSince(tx, 15, transactions.KindReactionEarn, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("count since future: %v", err)
	}

	if n != 0 {
		t.Errorf("want 0 future reactions, got %d", n)
	}
}
