package economy

import (
	"context"
	"time"
)

// Config is the process-wide economy parameter record. It lives in a single
// database row and is re-read on every operation that needs it, so admin
// changes take effect without a restart.
type Config struct {
	ReactionReward     int64
	DailyBaseReward    int64
	BonusPerStreakDay  int64
	BonusCap           int64
	DailyActivityLimit int64
	LevelFormula       string
	UpdatedAt          time.Time
}

// Provider is the read side, injected into the wallet and streak services.
type Provider interface {
	Get(ctx context.Context) (Config, error)
}

type Store interface {
	Provider
	Update(ctx context.Context, cfg Config) error
}
