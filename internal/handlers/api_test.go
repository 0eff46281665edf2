package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"datalens/internal/dataset"
	"datalens/internal/server"
	"datalens/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tbl, err := dataset.FromCSV([]byte(
		"Date,Product,Target_Qty,Actual_Qty\n" +
			"2025-01-01,A,100,90\n" +
			"2025-01-02,A,100,95\n",
	))
	if err != nil {
		t.Fatal(err)
	}

	catalog := services.NewCatalog("", 1)
	catalog.SetTable("production", tbl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pages := &server.PageHandlers{
		Dashboard: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html></html>"))
		},
	}

	ts := httptest.NewServer(server.NewServer(catalog, logger, pages))
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, wantStatus int) map[string]json.RawMessage {
	t.Helper()

	resp, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", path, resp.StatusCode, wantStatus)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("GET %s: content type %q", path, ct)
	}

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("GET %s: decode: %v", path, err)
	}
	return envelope
}

func TestListDatasets(t *testing.T) {
	ts := newTestServer(t)

	envelope := getJSON(t, ts, "/api/datasets", http.StatusOK)
	if string(envelope["success"]) != "true" {
		t.Error("success flag not set")
	}

	var summaries []services.Summary
	if err := json.Unmarshal(envelope["data"], &summaries); err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].Name != "production" {
		t.Fatalf("summaries = %+v", summaries)
	}
	if summaries[0].RowCount != 2 || summaries[0].ColumnCount != 4 {
		t.Errorf("shape = %d×%d, want 2×4", summaries[0].RowCount, summaries[0].ColumnCount)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	ts := newTestServer(t)

	envelope := getJSON(t, ts, "/api/datasets/production", http.StatusOK)

	var dash struct {
		Metrics []struct {
			Name  string  `json:"name"`
			Value float64 `json:"value"`
			Unit  string  `json:"unit"`
		} `json:"metrics"`
		Charts   []struct{ Type string } `json:"charts"`
		RowCount int                     `json:"row_count"`
	}
	if err := json.Unmarshal(envelope["data"], &dash); err != nil {
		t.Fatal(err)
	}

	if dash.RowCount != 2 {
		t.Errorf("row count = %d, want 2", dash.RowCount)
	}
	found := false
	for _, m := range dash.Metrics {
		if m.Name == "Efficiency" {
			found = true
			if m.Value != 92.5 || m.Unit != "%" {
				t.Errorf("efficiency = %v %s, want 92.5 %%", m.Value, m.Unit)
			}
		}
	}
	if !found {
		t.Error("efficiency metric missing from dashboard payload")
	}
	if len(dash.Charts) == 0 {
		t.Error("dashboard payload has no charts")
	}
}

func TestMetricsAndChartsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	metrics := getJSON(t, ts, "/api/datasets/production/metrics", http.StatusOK)
	if !strings.Contains(string(metrics["data"]), "Efficiency") {
		t.Error("metrics payload missing efficiency")
	}

	charts := getJSON(t, ts, "/api/datasets/production/charts", http.StatusOK)
	if !strings.Contains(string(charts["data"]), `"bar"`) {
		t.Error("charts payload missing bar chart")
	}
}

func TestUnknownDatasetReturns404(t *testing.T) {
	ts := newTestServer(t)

	envelope := getJSON(t, ts, "/api/datasets/nope", http.StatusNotFound)
	if string(envelope["success"]) != "false" {
		t.Error("error envelope should carry success=false")
	}

	var appErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope["error"], &appErr); err != nil {
		t.Fatal(err)
	}
	if appErr.Code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", appErr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	envelope := getJSON(t, ts, "/health", http.StatusOK)

	var body map[string]string
	if err := json.Unmarshal(envelope["data"], &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
}
