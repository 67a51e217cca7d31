package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/tradebook-app/tradebook/internal/dueinvoices"
	"github.com/tradebook-app/tradebook/internal/masterdata/products"
	"github.com/tradebook-app/tradebook/internal/reports"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStockLowScan is the task type for the low-stock scan.
	TaskStockLowScan = "stock:low_scan"
	// TaskDueInvoicesSnapshot is the task type for the aging snapshot.
	TaskDueInvoicesSnapshot = "dueinvoices:snapshot"
)

// StockLowScanPayload carries the enqueue time and a trace id that the
// handler echoes into its log lines.
type StockLowScanPayload struct {
	RequestID   uuid.UUID `json:"request_id"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewStockLowScanTask() (*asynq.Task, error) {
	data, err := json.Marshal(StockLowScanPayload{RequestID: uuid.New(), RequestedAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockLowScan, data), nil
}

// NewStockLowScanHandler scans for products at or below their minimum
// stock level and logs each one so operators see replenishment candidates
// in the worker log stream.
func NewStockLowScanHandler(svc *products.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload StockLowScanPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		low, err := svc.ListLowStock(ctx)
		if err != nil {
			return err
		}
		for _, p := range low {
			logger.Warn("low stock",
				slog.Int64("product_id", p.ID),
				slog.String("sku", p.SKU),
				slog.Float64("stock", p.CurrentStock),
				slog.Float64("min_level", p.MinStockLevel),
			)
		}
		logger.Info("stock scan complete",
			slog.String("request_id", payload.RequestID.String()),
			slog.Int("low_stock_items", len(low)),
		)
		return nil
	}
}

type DueInvoicesSnapshotPayload struct {
	RequestID   uuid.UUID `json:"request_id"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewDueInvoicesSnapshotTask() (*asynq.Task, error) {
	data, err := json.Marshal(DueInvoicesSnapshotPayload{RequestID: uuid.New(), RequestedAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDueInvoicesSnapshot, data), nil
}

// NewDueInvoicesSnapshotHandler recomputes the aging statistics, logs the
// headline numbers, then invalidates cached reports and rewarms the
// current-month summaries so the first morning read is served hot.
func NewDueInvoicesSnapshotHandler(due *dueinvoices.Service, rpt *reports.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload DueInvoicesSnapshotPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		stats, err := due.Stats(ctx, time.Time{})
		if err != nil {
			return err
		}
		logger.Info("due invoice snapshot",
			slog.String("request_id", payload.RequestID.String()),
			slog.Int("receivable_invoices", stats.Receivables.Total),
			slog.Float64("receivable_balance", stats.Receivables.TotalBalance),
			slog.Int("receivables_overdue", stats.Receivables.Overdue),
			slog.Int("payable_invoices", stats.Payables.Total),
			slog.Float64("payable_balance", stats.Payables.TotalBalance),
			slog.Int("payables_overdue", stats.Payables.Overdue),
		)
		if err := rpt.Invalidate(ctx); err != nil {
			return err
		}

		now := time.Now().UTC()
		month := reports.DateRange{
			From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
			To:   now,
		}
		if _, err := rpt.ProfitLoss(ctx, month); err != nil {
			logger.Warn("rewarm profit loss", slog.Any("error", err))
		}
		if _, err := rpt.Stock(ctx); err != nil {
			logger.Warn("rewarm stock report", slog.Any("error", err))
		}
		return nil
	}
}
