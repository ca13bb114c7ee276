package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	LineItemsApplied  *prometheus.CounterVec
	LineItemsReversed prometheus.Counter
	LineItemsEdited   prometheus.Counter
	LedgerDuration    prometheus.Histogram
	LedgerErrors      *prometheus.CounterVec
	LedgerRetries     prometheus.Counter

	// Stock metrics
	StockLevel     *prometheus.GaugeVec
	StockMovements *prometheus.CounterVec

	// Transaction metrics
	TransactionsCreated *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns  prometheus.Counter
	ReconciliationDrift *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		LineItemsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_line_items_applied_total",
				Help: "Total number of line items applied, by transaction kind",
			},
			[]string{"kind"},
		),
		LineItemsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_line_items_reversed_total",
			Help: "Total number of line items reversed",
		}),
		LineItemsEdited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_line_items_edited_total",
			Help: "Total number of line items edited and reapplied",
		}),
		LedgerDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockledger_ledger_duration_seconds",
			Help:    "Duration of ledger units of work",
			Buckets: prometheus.DefBuckets,
		}),
		LedgerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_ledger_errors_total",
				Help: "Total number of ledger errors by type",
			},
			[]string{"error_type"},
		),
		LedgerRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_ledger_retries_total",
			Help: "Total number of ledger retries on serialization conflicts",
		}),

		// Stock metrics
		StockLevel: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockledger_stock_level",
				Help: "Current stock quantity per product",
			},
			[]string{"product_id"},
		),
		StockMovements: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_stock_movements_total",
				Help: "Total stock movements by direction",
			},
			[]string{"direction"},
		),

		// Transaction metrics
		TransactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_transactions_created_total",
				Help: "Total number of transactions created, by kind",
			},
			[]string{"kind"},
		),
		// Reconciliation metrics
		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockledger_reconciliation_runs_total",
			Help: "Total number of reconciliation sweeps",
		}),
		ReconciliationDrift: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_reconciliation_drift_total",
				Help: "Total drifted entities found, by aggregate",
			},
			[]string{"aggregate"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action"},
		),
	}
}
