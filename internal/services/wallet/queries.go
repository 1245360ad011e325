package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/besobot/besitos/internal/repos/profiles"
	"github.com/besobot/besitos/internal/repos/transactions"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// maxPage keeps (page-1)*pageSize well inside int range; pages past the
	// end of the history simply come back empty.
	maxPage = 1_000_000
)

// GetBalance returns the spendable balance; unknown accounts read as zero.
func (s *Service) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	prof, err := s.GetProfile(ctx, accountID)
	if err != nil {
		return 0, err
	}

	return prof.Balance, nil
}

// GetProfile returns the account profile, or a zero-value profile for
// accounts with no ledger history.
func (s *Service) GetProfile(ctx context.Context, accountID int64) (profiles.Profile, error) {
	prof, err := s.profiles.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, profiles.ErrNoProfile) {
			return profiles.Profile{AccountID: accountID, Level: 1}, nil
		}

		return profiles.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return prof, nil
}

// HistoryPage is one page of an account's audit trail, newest-first, with
// the total row count for pagination UIs.
type HistoryPage struct {
	Records    []transactions.Record
	TotalCount int64
	Page       int
	PageSize   int
}

func (s *Service) GetHistory(ctx context.Context, accountID int64, page, pageSize int, kind *transactions.Kind) (HistoryPage, error) {
	if page < 1 {
		page = 1
	}

	if page > maxPage {
		page = maxPage
	}

	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	recs, err := s.txns.List(ctx, accountID, kind, pageSize, (page-1)*pageSize)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("get history: %w", err)
	}

	total, err := s.txns.Count(ctx, accountID, kind)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("count history: %w", err)
	}

	return HistoryPage{Records: recs, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

// GetLevel evaluates the configured progression formula against the
// account's lifetime earnings.
func (s *Service) GetLevel(ctx context.Context, accountID int64) (int64, error) {
	prof, err := s.GetProfile(ctx, accountID)
	if err != nil {
		return 0, err
	}

	return s.levelFor(ctx, prof.TotalEarned), nil
}
