package profiles

import (
	"database/sql"

	"github.com/besobot/besitos/internal/repos/profiles"
)

var _ profiles.Profiles = (*profilesRepo)(nil)

type profilesRepo struct{ db *sql.DB }

func New(db *sql.DB) *profilesRepo {
	return &profilesRepo{db: db}
}
