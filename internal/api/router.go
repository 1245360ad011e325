package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers every exposed ledger and streak operation.
func NewRouter(h *HandlerProvider) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/account/{accountId}", func(r chi.Router) {
		r.Get("/balance", h.GetBalanceHandler)
		r.Get("/profile", h.GetProfileHandler)
		r.Get("/level", h.GetLevelHandler)
		r.Get("/history", h.GetHistoryHandler)
		r.Post("/credit", h.CreditHandler)
		r.Post("/debit", h.DebitHandler)
		r.Post("/reaction", h.ReactionHandler)

		r.Get("/claim", h.ClaimEligibilityHandler)
		r.Post("/claim", h.ClaimHandler)
		r.Post("/activity", h.ActivityHandler)
		r.Get("/streak/{category}", h.StreakInfoHandler)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/account/{accountId}/credit", h.AdminCreditHandler)
		r.Post("/account/{accountId}/debit", h.AdminDebitHandler)
		r.Get("/config", h.GetConfigHandler)
		r.Put("/config", h.UpdateConfigHandler)
	})

	return r
}
