package dueinvoices

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradebook-app/tradebook/internal/finance"
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
	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Get("/top-debtors", h.TopDebtors)
	r.Get("/top-creditors", h.TopCreditors)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ListRequest{}

	switch v := q.Get("type"); v {
	case "", string(TypeReceivable), string(TypePayable):
		req.Type = InvoiceType(v)
	default:
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "type must be receivable or payable")
		return
	}
	if v := q.Get("aging"); v != "" {
		cat := finance.AgingCategory(v)
		valid := false
		for _, c := range finance.AgingCategories {
			if c == cat {
				valid = true
				break
			}
		}
		if !valid {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown aging category")
			return
		}
		req.AgingCategory = cat
	}
	if v := q.Get("as_of"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "as_of must be YYYY-MM-DD")
			return
		}
		req.AsOf = t
	}
	req.Limit, _ = strconv.Atoi(q.Get("limit"))

	invoices, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list due invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": invoices, "total": len(invoices)})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	var asOf time.Time
	if v := r.URL.Query().Get("as_of"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "as_of must be YYYY-MM-DD")
			return
		}
		asOf = t
	}
	stats, err := h.service.Stats(r.Context(), asOf)
	if err != nil {
		h.logger.Error("due invoice stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) TopDebtors(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	parties, err := h.service.TopDebtors(r.Context(), limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": parties})
}

func (h *Handler) TopCreditors(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	parties, err := h.service.TopCreditors(r.Context(), limit)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": parties})
}
