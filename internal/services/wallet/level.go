package wallet

import (
	"context"
	"log/slog"

	"github.com/besobot/besitos/internal/levelformula"
)

// levelFor evaluates the configured formula for a lifetime-earned total.
// The stored formula was validated when an admin set it, so a parse or eval
// failure here means config drift; in that case the default formula is used
// and the incident is logged rather than failing the ledger operation.
func (s *Service) levelFor(ctx context.Context, totalEarned int64) int64 {
	src := levelformula.Default

	cfg, err := s.economy.Get(ctx)
	if err != nil {
		slog.Error("read economy config for level, using default formula", "error", err)
	} else {
		src = cfg.LevelFormula
	}

	lvl, err := evalFormula(src, totalEarned)
	if err == nil {
		return lvl
	}

	slog.Error("stored level formula failed, using default", "formula", src, "error", err)

	lvl, err = evalFormula(levelformula.Default, totalEarned)
	if err != nil {
		// The default formula is total on every non-negative input.
		slog.Error("default level formula failed", "error", err)

		return 1
	}

	return lvl
}

func evalFormula(src string, totalEarned int64) (int64, error) {
	f, err := levelformula.Parse(src)
	if err != nil {
		return 0, err
	}

	return f.Eval(totalEarned)
}
