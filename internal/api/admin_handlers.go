package api

import (
	"net/http"
)

type adminMutationRequest struct {
	Amount  int64  `json:"amount"`
	Reason  string `json:"reason"`
	AdminID int64  `json:"adminId"`
}

// AdminCreditHandler handles POST /admin/account/{accountId}/credit
func (h *HandlerProvider) AdminCreditHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	var req adminMutationRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	rec, err := h.wallet.AdminCredit(r.Context(), accountID, req.Amount, req.Reason, req.AdminID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transaction": txToJSON(rec)})
}

// AdminDebitHandler handles POST /admin/account/{accountId}/debit
func (h *HandlerProvider) AdminDebitHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	var req adminMutationRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	rec, err := h.wallet.AdminDebit(r.Context(), accountID, req.Amount, req.Reason, req.AdminID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transaction": txToJSON(rec)})
}

// GetConfigHandler handles GET /admin/config
func (h *HandlerProvider) GetConfigHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.econ.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reactionReward":     cfg.ReactionReward,
		"dailyBaseReward":    cfg.DailyBaseReward,
		"bonusPerStreakDay":  cfg.BonusPerStreakDay,
		"bonusCap":           cfg.BonusCap,
		"dailyActivityLimit": cfg.DailyActivityLimit,
		"levelFormula":       cfg.LevelFormula,
		"updatedAt":          cfg.UpdatedAt,
	})
}

type configUpdateRequest struct {
	ReactionReward     *int64  `json:"reactionReward,omitempty"`
	DailyBaseReward    *int64  `json:"dailyBaseReward,omitempty"`
	BonusPerStreakDay  *int64  `json:"bonusPerStreakDay,omitempty"`
	BonusCap           *int64  `json:"bonusCap,omitempty"`
	DailyActivityLimit *int64  `json:"dailyActivityLimit,omitempty"`
	LevelFormula       *string `json:"levelFormula,omitempty"`
}

// UpdateConfigHandler handles PUT /admin/config. Absent fields are left
// unchanged; each present field is validated independently before it is
// persisted.
func (h *HandlerProvider) UpdateConfigHandler(w http.ResponseWriter, r *http.Request) {
	var req configUpdateRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	ctx := r.Context()

	setters := []func() error{
		func() error {
			if req.ReactionReward == nil {
				return nil
			}
			return h.econ.SetReactionReward(ctx, *req.ReactionReward)
		},
		func() error {
			if req.DailyBaseReward == nil {
				return nil
			}
			return h.econ.SetDailyBaseReward(ctx, *req.DailyBaseReward)
		},
		func() error {
			if req.BonusPerStreakDay == nil {
				return nil
			}
			return h.econ.SetBonusPerStreakDay(ctx, *req.BonusPerStreakDay)
		},
		func() error {
			if req.BonusCap == nil {
				return nil
			}
			return h.econ.SetBonusCap(ctx, *req.BonusCap)
		},
		func() error {
			if req.DailyActivityLimit == nil {
				return nil
			}
			return h.econ.SetDailyActivityLimit(ctx, *req.DailyActivityLimit)
		},
		func() error {
			if req.LevelFormula == nil {
				return nil
			}
			return h.econ.SetLevelFormula(ctx, *req.LevelFormula)
		},
	}

	for _, set := range setters {
		err = set()
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	h.GetConfigHandler(w, r)
}
