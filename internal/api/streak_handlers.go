package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/besobot/besitos/internal/repos/streaks"
)

// ClaimEligibilityHandler handles GET /account/{accountId}/claim
func (h *HandlerProvider) ClaimEligibilityHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	el, err := h.streak.CanClaim(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]any{"eligible": el.Eligible}
	if !el.Eligible {
		resp["nextClaimInSeconds"] = int64(el.NextClaimIn / time.Second)
	}

	writeJSON(w, http.StatusOK, resp)
}

// ClaimHandler handles POST /account/{accountId}/claim
func (h *HandlerProvider) ClaimHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	res, err := h.streak.Claim(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"base":          res.Base,
		"bonus":         res.Bonus,
		"total":         res.Total,
		"currentStreak": res.CurrentStreak,
		"longestStreak": res.LongestStreak,
	})
}

// ActivityHandler handles POST /account/{accountId}/activity
func (h *HandlerProvider) ActivityHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	err = h.streak.RecordActivity(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StreakInfoHandler handles GET /account/{accountId}/streak/{category}
func (h *HandlerProvider) StreakInfoHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	category, err := streaks.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid streak category")
		return
	}

	rec, err := h.streak.GetStreakInfo(r.Context(), accountID, category)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]any{
		"accountId":     rec.AccountID,
		"category":      string(rec.Category),
		"currentStreak": rec.CurrentStreak,
		"longestStreak": rec.LongestStreak,
	}

	if rec.LastEventDate != nil {
		resp["lastEventDate"] = rec.LastEventDate.Format("2006-01-02")
	}

	writeJSON(w, http.StatusOK, resp)
}
