package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradebook-app/tradebook/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sales", h.Sales)
	r.Get("/purchases", h.Purchases)
	r.Get("/profit-loss", h.ProfitLoss)
	r.Get("/stock", h.Stock)
	r.Get("/customers", h.Customers)
}

// parsePeriod reads from/to query params, defaulting to the current month.
func parsePeriod(r *http.Request) (DateRange, bool) {
	now := time.Now().UTC()
	period := DateRange{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		To:   now,
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return DateRange{}, false
		}
		period.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return DateRange{}, false
		}
		period.To = t
	}
	return period, true
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

func csvHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}

func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "dates must be YYYY-MM-DD")
		return
	}
	report, err := h.service.Sales(r.Context(), period)
	if err != nil {
		h.logger.Error("sales report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if wantsCSV(r) {
		csvHeaders(w, "sales-report.csv")
		if err := WriteSalesCSV(w, report); err != nil {
			h.logger.Error("write sales csv", slog.Any("error", err))
		}
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) Purchases(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "dates must be YYYY-MM-DD")
		return
	}
	report, err := h.service.Purchases(r.Context(), period)
	if err != nil {
		h.logger.Error("purchases report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if wantsCSV(r) {
		csvHeaders(w, "purchases-report.csv")
		if err := WritePurchasesCSV(w, report); err != nil {
			h.logger.Error("write purchases csv", slog.Any("error", err))
		}
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "dates must be YYYY-MM-DD")
		return
	}
	report, err := h.service.ProfitLoss(r.Context(), period)
	if err != nil {
		h.logger.Error("profit loss report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) Stock(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Stock(r.Context())
	if err != nil {
		h.logger.Error("stock report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if wantsCSV(r) {
		csvHeaders(w, "stock-report.csv")
		if err := WriteStockCSV(w, report); err != nil {
			h.logger.Error("write stock csv", slog.Any("error", err))
		}
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "dates must be YYYY-MM-DD")
		return
	}
	report, err := h.service.Customers(r.Context(), period)
	if err != nil {
		h.logger.Error("customer report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
