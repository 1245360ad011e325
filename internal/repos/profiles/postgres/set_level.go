package profiles

import (
	"database/sql"
	"fmt"
)

func (r *profilesRepo) SetLevel(tx *sql.Tx, accountID, level int64) error {
	_, err := tx.Exec(`
		UPDATE account_profiles
		SET level = $2
		WHERE account_id = $1
	`, accountID, level)
	if err != nil {
		return fmt.Errorf("set level: %w", err)
	}

	return nil
}
