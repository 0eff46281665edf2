package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"datalens/internal/insight"
	"datalens/internal/services"
)

const maxMetricRows = 50

var metricsTableTemplate = template.Must(template.New("metricsTable").Parse(`
<div id="metrics-content">
<table class="modern-table">
<thead><tr><th>Metric</th><th>Value</th><th>Formula</th></tr></thead>
<tbody>
{{range .Metrics}}<tr>
<td>{{.Name}}</td>
<td><strong>{{printf "%.2f" .Value}}{{.Unit}}</strong></td>
<td><code>{{.Formula}}</code></td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	catalog *services.Catalog
	logger  *slog.Logger
}

func NewSSEHandlers(catalog *services.Catalog, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{catalog: catalog, logger: logger}
}

func (h *SSEHandlers) renderMetricsTable(metrics []insight.Metric) (string, error) {
	if len(metrics) > maxMetricRows {
		metrics = metrics[:maxMetricRows]
	}

	var buf strings.Builder
	err := metricsTableTemplate.Execute(&buf, map[string]any{"Metrics": metrics})
	return buf.String(), err
}

// HandleDataset pushes one dataset's dashboard: chart data as datastar
// signals plus a patched metrics table fragment.
func (h *SSEHandlers) HandleDataset(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	name := r.PathValue("name")
	dashboard, ok := h.catalog.Dashboard(name)
	if !ok {
		sse.PatchElements(`<div id="metrics-content">Dataset not found</div>`)
		return
	}

	signals, err := json.Marshal(map[string]any{
		"chartsData": dashboard.Charts,
		"rowCount":   dashboard.RowCount,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "dataset", name, "error", err)
		return
	}
	sse.PatchSignals(signals)

	html, err := h.renderMetricsTable(dashboard.Metrics)
	if err != nil {
		h.logger.Error("render metrics table", "dataset", name, "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll re-pushes chart data for every loaded dataset in one
// signals patch, keyed by dataset name.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	payload := make(map[string]any)
	for _, summary := range h.catalog.Datasets() {
		if dashboard, ok := h.catalog.Dashboard(summary.Name); ok {
			payload[summary.Name] = dashboard.Charts
		}
	}

	signals, err := json.Marshal(map[string]any{"datasets": payload})
	if err != nil {
		h.logger.Error("marshal refresh signals", "error", err)
		return
	}
	sse.PatchSignals(signals)
	sse.PatchElements(`<div id="refresh-status">Dashboards refreshed</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
