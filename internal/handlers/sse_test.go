package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func getSSE(t *testing.T, url string) string {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("content type = %q, want text/event-stream", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestDatasetSSEStream(t *testing.T) {
	ts := newTestServer(t)

	body := getSSE(t, ts.URL+"/sse/datasets/production")

	if !strings.Contains(body, "datastar-patch-signals") {
		t.Error("stream missing signals patch event")
	}
	if !strings.Contains(body, "chartsData") {
		t.Error("signals patch missing chart data")
	}
	if !strings.Contains(body, "datastar-patch-elements") {
		t.Error("stream missing elements patch event")
	}
	if !strings.Contains(body, "metrics-content") || !strings.Contains(body, "Efficiency") {
		t.Error("metrics table fragment missing from stream")
	}
}

func TestDatasetSSEUnknownDataset(t *testing.T) {
	ts := newTestServer(t)

	body := getSSE(t, ts.URL+"/sse/datasets/nope")

	if !strings.Contains(body, "Dataset not found") {
		t.Error("stream should patch in a not-found fragment")
	}
}

func TestRefreshAllSSEStream(t *testing.T) {
	ts := newTestServer(t)

	body := getSSE(t, ts.URL+"/sse/refresh-all")

	if !strings.Contains(body, "production") {
		t.Error("refresh stream missing loaded dataset")
	}
	if !strings.Contains(body, "refresh-status") {
		t.Error("refresh stream missing status fragment")
	}
}
