package economy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/besobot/besitos/internal/repos/economy"
)

var _ economy.Store = (*economyRepo)(nil)

type economyRepo struct{ db *sql.DB }

func New(db *sql.DB) *economyRepo {
	return &economyRepo{db: db}
}

// The singleton row (id = 1) is seeded by migration, so Get never sees
// sql.ErrNoRows on a migrated database.
func (r *economyRepo) Get(ctx context.Context) (economy.Config, error) {
	var cfg economy.Config

	err := r.db.QueryRowContext(ctx, `
		SELECT reaction_reward, daily_base_reward, bonus_per_streak_day,
		       bonus_cap, daily_activity_limit, level_formula, updated_at
		FROM economy_config
		WHERE id = 1
	`).Scan(&cfg.ReactionReward, &cfg.DailyBaseReward, &cfg.BonusPerStreakDay,
		&cfg.BonusCap, &cfg.DailyActivityLimit, &cfg.LevelFormula, &cfg.UpdatedAt)
	if err != nil {
		return economy.Config{}, fmt.Errorf("get economy config: %w", err)
	}

	return cfg, nil
}

func (r *economyRepo) Update(ctx context.Context, cfg economy.Config) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE economy_config
		SET reaction_reward      = $1,
		    daily_base_reward    = $2,
		    bonus_per_streak_day = $3,
		    bonus_cap            = $4,
		    daily_activity_limit = $5,
		    level_formula        = $6,
		    updated_at           = now()
		WHERE id = 1
	`, cfg.ReactionReward, cfg.DailyBaseReward, cfg.BonusPerStreakDay,
		cfg.BonusCap, cfg.DailyActivityLimit, cfg.LevelFormula)
	if err != nil {
		return fmt.Errorf("update economy config: %w", err)
	}

	return nil
}
