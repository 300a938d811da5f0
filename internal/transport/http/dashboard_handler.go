package http

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "procurepulse/internal/errors"
)

// Export content types
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// DashboardHandler serves the dashboard views of one filter selection
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the /api/dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Get("/filters", h.GetFilters)
	r.Get("/orders.csv", h.ExportCSV)
	r.Get("/orders.xlsx", h.ExportXLSX)
	return r
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	q, err := ParseDashboardQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Dashboard(r.Context(), q.Selection())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

// GetFilters handles GET /api/dashboard/filters
func (h *DashboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	q, err := ParseDashboardQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	opts, err := h.service.Filters(r.Context(), q.Selection())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

// ExportCSV handles GET /api/dashboard/orders.csv
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	q, err := ParseDashboardQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), &buf, q.Selection()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.attachment(w, r, "orders.csv", ContentTypeCSV, buf.Bytes())
}

// ExportXLSX handles GET /api/dashboard/orders.xlsx
func (h *DashboardHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	q, err := ParseDashboardQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportXLSX(r.Context(), &buf, q.Selection()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.attachment(w, r, "orders.xlsx", ContentTypeXLSX, buf.Bytes())
}

// Page handles GET /dashboard
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	q, err := ParseDashboardQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page, err := h.service.RenderHTML(r.Context(), q.Selection())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write dashboard page", slog.String("error", err.Error()))
	}
}

// attachment writes a fully buffered export so errors never leave a partial file
func (h *DashboardHandler) attachment(w http.ResponseWriter, r *http.Request, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write export",
			slog.String("file", filename),
			slog.String("error", err.Error()))
	}
}
