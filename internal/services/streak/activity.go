package streak

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/besobot/besitos/internal/infra/pgutils"
	"github.com/besobot/besitos/internal/repos/streaks"
)

// RecordActivity advances the activity streak for today. Unlike Claim it
// credits nothing, and a repeat call on the same UTC day is a silent no-op.
func (s *Service) RecordActivity(ctx context.Context, accountID int64) error {
	today := midnightUTC(s.now())

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := s.streaks.Advance(tx, accountID, streaks.CategoryActivity, today)
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, streaks.ErrAlreadyRecorded) {
			return nil
		}

		return fmt.Errorf("record activity: %w", err)
	}

	return nil
}
