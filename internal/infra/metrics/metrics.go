// Package metrics holds the Prometheus instruments for the ledger core.
// Everything registers on the default registry; internal/api serves it on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var CreditsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "besitos_credits_total",
	Help: "Successful wallet credits by transaction kind.",
}, []string{"kind"})

var DebitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "besitos_debits_total",
	Help: "Successful wallet debits by transaction kind.",
}, []string{"kind"})

var InsufficientFundsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "besitos_insufficient_funds_total",
	Help: "Debits rejected by the balance guard.",
})

var ClaimsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "besitos_claims_total",
	Help: "Successful daily claims.",
})

var DuplicateClaimsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "besitos_duplicate_claims_total",
	Help: "Claims rejected because the account already claimed today.",
})

var SweepResetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "besitos_sweep_resets_total",
	Help: "Streaks reset by the expiration sweep, by category.",
}, []string{"category"})
