package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/besobot/besitos/internal/repos/transactions"
	"github.com/besobot/besitos/internal/services/wallet"
)

// GetBalanceHandler handles GET /account/{accountId}/balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	bal, err := h.wallet.GetBalance(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accountId": accountID,
		"balance":   bal,
	})
}

// GetProfileHandler handles GET /account/{accountId}/profile
func (h *HandlerProvider) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	prof, err := h.wallet.GetProfile(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accountId":   prof.AccountID,
		"balance":     prof.Balance,
		"totalEarned": prof.TotalEarned,
		"totalSpent":  prof.TotalSpent,
		"level":       prof.Level,
	})
}

// GetLevelHandler handles GET /account/{accountId}/level
func (h *HandlerProvider) GetLevelHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	lvl, err := h.wallet.GetLevel(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accountId": accountID,
		"level":     lvl,
	})
}

// GetHistoryHandler handles GET /account/{accountId}/history
func (h *HandlerProvider) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	q := r.URL.Query()

	page := queryInt(q.Get("page"), 1)
	pageSize := queryInt(q.Get("pageSize"), 0)

	var kind *transactions.Kind

	if raw := q.Get("kind"); raw != "" {
		k, err := transactions.ParseKind(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid kind filter")
			return
		}

		kind = &k
	}

	pg, err := h.wallet.GetHistory(r.Context(), accountID, page, pageSize, kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	records := make([]map[string]any, 0, len(pg.Records))
	for _, rec := range pg.Records {
		records = append(records, txToJSON(rec))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records":    records,
		"totalCount": pg.TotalCount,
		"page":       pg.Page,
		"pageSize":   pg.PageSize,
	})
}

type mutationRequest struct {
	Amount int64          `json:"amount"`
	Kind   string         `json:"kind"`
	Reason string         `json:"reason"`
	Extra  map[string]any `json:"extra,omitempty"`
	Ref    string         `json:"ref,omitempty"`
}

func (h *HandlerProvider) parseEntry(w http.ResponseWriter, r *http.Request) (wallet.Entry, bool) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return wallet.Entry{}, false
	}

	var req mutationRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return wallet.Entry{}, false
	}

	kind, err := transactions.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid kind")
		return wallet.Entry{}, false
	}

	ref, err := parseRef(req.Ref)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ref")
		return wallet.Entry{}, false
	}

	return wallet.Entry{
		AccountID: accountID,
		Amount:    req.Amount,
		Kind:      kind,
		Reason:    req.Reason,
		Extra:     req.Extra,
		Ref:       ref,
	}, true
}

// CreditHandler handles POST /account/{accountId}/credit
func (h *HandlerProvider) CreditHandler(w http.ResponseWriter, r *http.Request) {
	e, ok := h.parseEntry(w, r)
	if !ok {
		return
	}

	rec, err := h.wallet.Credit(r.Context(), e)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transaction": txToJSON(rec)})
}

// DebitHandler handles POST /account/{accountId}/debit
func (h *HandlerProvider) DebitHandler(w http.ResponseWriter, r *http.Request) {
	e, ok := h.parseEntry(w, r)
	if !ok {
		return
	}

	rec, err := h.wallet.Debit(r.Context(), e)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transaction": txToJSON(rec)})
}

// ReactionHandler handles POST /account/{accountId}/reaction. The body is
// optional; it may carry an idempotency ref.
func (h *HandlerProvider) ReactionHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountId in path")
		return
	}

	var req struct {
		Ref string `json:"ref,omitempty"`
	}

	err = decodeBody(w, r, &req)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	ref, err := parseRef(req.Ref)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ref")
		return
	}

	rec, err := h.wallet.CreditReaction(r.Context(), accountID, ref)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transaction": txToJSON(rec)})
}
