package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/besobot/besitos/internal/repos/profiles"
	"github.com/besobot/besitos/internal/repos/transactions"
	economysvc "github.com/besobot/besitos/internal/services/economy"
	"github.com/besobot/besitos/internal/services/streak"
	"github.com/besobot/besitos/internal/services/wallet"
)

// HandlerProvider wraps the core services and exposes HTTP handlers.
type HandlerProvider struct {
	wallet *wallet.Service
	streak *streak.Service
	econ   *economysvc.Service
}

func NewHandler(w *wallet.Service, s *streak.Service, e *economysvc.Service) *HandlerProvider {
	return &HandlerProvider{wallet: w, streak: s, econ: e}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the documented error taxonomy onto HTTP statuses.
// Everything the core classifies is an expected outcome (400/404/409); only
// storage failures fall through to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallet.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid amount")
	case errors.Is(err, wallet.ErrInvalidKind):
		writeError(w, http.StatusBadRequest, "invalid transaction kind")
	case errors.Is(err, economysvc.ErrInvalidValue):
		writeError(w, http.StatusBadRequest, "invalid configuration value")
	case errors.Is(err, profiles.ErrNoProfile):
		writeError(w, http.StatusNotFound, "no profile")
	case errors.Is(err, profiles.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "insufficient funds")
	case errors.Is(err, transactions.ErrDuplicateTransaction):
		writeError(w, http.StatusConflict, "duplicate transaction")
	case errors.Is(err, wallet.ErrDailyLimitReached):
		writeError(w, http.StatusConflict, "daily activity limit reached")
	case errors.Is(err, streak.ErrAlreadyClaimed):
		writeError(w, http.StatusConflict, "already claimed today")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseAccountID reads `{accountId}` from chi routes.
func parseAccountID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "accountId")
	if idStr == "" {
		return 0, fmt.Errorf("missing accountId")
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid accountId: %w", err)
	}

	if id <= 0 {
		return 0, fmt.Errorf("invalid accountId: must be positive")
	}

	return id, nil
}

func parseRef(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}

	ref, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid ref: %w", err)
	}

	return &ref, nil
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return n
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

func txToJSON(rec transactions.Record) map[string]any {
	out := map[string]any{
		"id":        rec.ID,
		"accountId": rec.AccountID,
		"amount":    rec.Amount,
		"kind":      string(rec.Kind),
		"reason":    rec.Reason,
		"createdAt": rec.CreatedAt.UTC().Format(time.RFC3339),
	}

	if rec.Extra != nil {
		out["extra"] = rec.Extra
	}

	if rec.Ref != nil {
		out["ref"] = rec.Ref.String()
	}

	return out
}
