// Package metrics holds the Prometheus counters shared across modules.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsTotal counts completed checkouts by payment method.
	TransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novapos_transactions_total",
		Help: "Completed checkout transactions.",
	}, []string{"payment_method"})

	// ScansTotal counts recognised barcode scans by lookup result.
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novapos_scans_total",
		Help: "Recognised barcode scans.",
	}, []string{"result"})
)
