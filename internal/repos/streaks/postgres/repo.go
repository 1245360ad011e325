package streaks

import (
	"database/sql"

	"github.com/besobot/besitos/internal/repos/streaks"
)

var _ streaks.Streaks = (*streaksRepo)(nil)

type streaksRepo struct{ db *sql.DB }

func New(db *sql.DB) *streaksRepo {
	return &streaksRepo{db: db}
}
