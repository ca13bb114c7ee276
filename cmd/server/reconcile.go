package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/warp/stockledger/internal/usecase"
)

// runReconcileSweep periodically regenerates the drift report and logs
// any inconsistencies it finds.
func runReconcileSweep(ctx context.Context, log zerolog.Logger, uc *usecase.ReconciliationUseCase, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("reconciliation sweep enabled")

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			report, err := uc.GenerateReport(ctx)
			if err != nil {
				log.Error().Err(err).Msg("reconciliation sweep failed")
				continue
			}

			if report.Consistent {
				log.Info().
					Int("products_checked", report.ProductsChecked).
					Int("transactions_checked", report.TransactionsChecked).
					Msg("reconciliation sweep clean")
				continue
			}

			for _, drift := range report.StockDrift {
				log.Warn().
					Str("product_id", drift.ProductID).
					Int64("expected", drift.Expected).
					Int64("actual", drift.Actual).
					Int64("drift", drift.Drift).
					Msg("stock drift detected")
			}
			for _, drift := range report.TotalDrift {
				log.Warn().
					Str("transaction_id", drift.TransactionID).
					Str("expected", drift.Expected.String()).
					Str("actual", drift.Actual.String()).
					Str("drift", drift.Drift.String()).
					Msg("total drift detected")
			}
		}
	}
}
