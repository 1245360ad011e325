// Package economy exposes the admin-facing configuration setters. Every
// field is validated before it is persisted; readers see changes on their
// next operation through the read-through provider.
package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/besobot/besitos/internal/levelformula"
	"github.com/besobot/besitos/internal/repos/economy"
)

var ErrInvalidValue = errors.New("invalid configuration value")

type Service struct {
	store economy.Store
}

func New(store economy.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) (economy.Config, error) {
	cfg, err := s.store.Get(ctx)
	if err != nil {
		return economy.Config{}, fmt.Errorf("get config: %w", err)
	}

	return cfg, nil
}

func (s *Service) SetReactionReward(ctx context.Context, v int64) error {
	return s.setPositive(ctx, "reaction reward", v, func(cfg *economy.Config) { cfg.ReactionReward = v })
}

func (s *Service) SetDailyBaseReward(ctx context.Context, v int64) error {
	return s.setPositive(ctx, "daily base reward", v, func(cfg *economy.Config) { cfg.DailyBaseReward = v })
}

func (s *Service) SetBonusPerStreakDay(ctx context.Context, v int64) error {
	return s.setPositive(ctx, "bonus per streak day", v, func(cfg *economy.Config) { cfg.BonusPerStreakDay = v })
}

func (s *Service) SetBonusCap(ctx context.Context, v int64) error {
	return s.setPositive(ctx, "bonus cap", v, func(cfg *economy.Config) { cfg.BonusCap = v })
}

func (s *Service) SetDailyActivityLimit(ctx context.Context, v int64) error {
	return s.setPositive(ctx, "daily activity limit", v, func(cfg *economy.Config) { cfg.DailyActivityLimit = v })
}

// SetLevelFormula accepts a formula only after it parses against the
// restricted grammar and its sample probes all yield a level of at least 1.
func (s *Service) SetLevelFormula(ctx context.Context, src string) error {
	err := levelformula.Validate(src)
	if err != nil {
		return fmt.Errorf("%w: level formula: %v", ErrInvalidValue, err)
	}

	return s.update(ctx, func(cfg *economy.Config) { cfg.LevelFormula = src })
}

func (s *Service) setPositive(ctx context.Context, name string, v int64, mutate func(*economy.Config)) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidValue, name, v)
	}

	return s.update(ctx, mutate)
}

func (s *Service) update(ctx context.Context, mutate func(*economy.Config)) error {
	cfg, err := s.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("get config: %w", err)
	}

	mutate(&cfg)

	err = s.store.Update(ctx, cfg)
	if err != nil {
		return fmt.Errorf("update config: %w", err)
	}

	return nil
}
