package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"datalens/internal/errors"
	"datalens/internal/observability"
	"datalens/internal/services"
)

const cacheControl = "public, max-age=300"

type APIHandlers struct {
	catalog *services.Catalog
	logger  *slog.Logger
}

func NewAPIHandlers(catalog *services.Catalog, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{catalog: catalog, logger: logger}
}

// HandleListDatasets lists every loaded dataset with shape info.
func (h *APIHandlers) HandleListDatasets(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.catalog.Datasets(), map[string]string{
		"Cache-Control": cacheControl,
	})
}

// HandleDashboard returns the full assembled output for one dataset:
// metrics, charts, row and column counts.
func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	dashboard, ok := h.catalog.Dashboard(name)
	if !ok {
		errors.WriteError(w, h.logger, errors.NotFound("dataset not found"), observability.GetRequestID(r.Context()))
		return
	}
	errors.WriteSuccessWithHeaders(w, dashboard, map[string]string{
		"Cache-Control": cacheControl,
	})
}

// HandleMetrics returns just the metrics block of one dataset.
func (h *APIHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	dashboard, ok := h.catalog.Dashboard(name)
	if !ok {
		errors.WriteError(w, h.logger, errors.NotFound("dataset not found"), observability.GetRequestID(r.Context()))
		return
	}
	errors.WriteSuccess(w, dashboard.Metrics)
}

// HandleCharts returns just the chart list of one dataset.
func (h *APIHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	dashboard, ok := h.catalog.Dashboard(name)
	if !ok {
		errors.WriteError(w, h.logger, errors.NotFound("dataset not found"), observability.GetRequestID(r.Context()))
		return
	}
	errors.WriteSuccess(w, dashboard.Charts)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.catalog.Stats())
}
