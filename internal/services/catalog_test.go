package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"datalens/internal/dataset"
)

const productionCSV = `Date,Product,Target_Qty,Actual_Qty
2025-01-01,A,100,90
2025-01-02,A,100,95
`

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDirAssemblesEveryCSV(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "production.csv", productionCSV)
	writeCSV(t, dir, "downtime.CSV", "machine,hours\nM1,2\nM2,3\n")
	writeCSV(t, dir, "notes.txt", "not a dataset")

	c := NewCatalog("", 2)
	if err := c.LoadDir(context.Background(), dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	summaries := c.Datasets()
	if len(summaries) != 2 {
		t.Fatalf("got %d datasets, want 2", len(summaries))
	}
	// Sorted by name: downtime before production.
	if summaries[0].Name != "downtime" || summaries[1].Name != "production" {
		t.Errorf("names = %q, %q", summaries[0].Name, summaries[1].Name)
	}

	dash, ok := c.Dashboard("production")
	if !ok {
		t.Fatal("production dashboard missing")
	}
	if dash.RowCount != 2 || dash.ColumnCount != 4 {
		t.Errorf("production counts = %d×%d, want 2×4", dash.RowCount, dash.ColumnCount)
	}
	if len(dash.Metrics) == 0 {
		t.Error("production dashboard has no metrics")
	}
}

func TestLoadDirSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "good.csv", "qty\n1\n2\n")
	writeCSV(t, dir, "empty.csv", "")

	c := NewCatalog("", 1)
	if err := c.LoadDir(context.Background(), dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if _, ok := c.Dashboard("good"); !ok {
		t.Error("good dataset missing")
	}
	if _, ok := c.Dashboard("empty"); ok {
		t.Error("empty file should not have produced a dataset")
	}
}

func TestLoadDirErrors(t *testing.T) {
	c := NewCatalog("", 1)
	ctx := context.Background()

	if err := c.LoadDir(ctx, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("want error for unreadable directory")
	}
	if err := c.LoadDir(ctx, t.TempDir()); err == nil {
		t.Error("want error for directory without CSV files")
	}

	dir := t.TempDir()
	writeCSV(t, dir, "broken.csv", "")
	if err := c.LoadDir(ctx, dir); err == nil {
		t.Error("want error when nothing at all could be loaded")
	}
}

func TestLoadFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	cacheDir := t.TempDir()
	path := writeCSV(t, dir, "production.csv", productionCSV)

	c := NewCatalog(cacheDir, 1)
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("first load: %v", err)
	}
	first, _ := c.Snapshot("production")

	// A fresh catalog with the same cache dir must serve the cached
	// assembly rather than re-parsing, keeping the original snapshot ID.
	c2 := NewCatalog(cacheDir, 1)
	if err := c2.LoadFile(path); err != nil {
		t.Fatalf("cached load: %v", err)
	}
	second, _ := c2.Snapshot("production")

	if second.ID != first.ID {
		t.Error("cached load produced a new snapshot instead of reusing the cache")
	}
	if second.Dashboard.RowCount != 2 {
		t.Errorf("cached dashboard rows = %d, want 2", second.Dashboard.RowCount)
	}
}

func TestSetTable(t *testing.T) {
	tbl, err := dataset.FromCSV([]byte("qty\n5\n7\n"))
	if err != nil {
		t.Fatal(err)
	}

	c := NewCatalog("", 1)
	c.SetTable("inline", tbl)

	snap, ok := c.Snapshot("inline")
	if !ok {
		t.Fatal("inline snapshot missing")
	}
	if snap.ID == "" || snap.LoadedAt.IsZero() {
		t.Error("snapshot metadata not populated")
	}
	if snap.Dashboard.RowCount != 2 {
		t.Errorf("rows = %d, want 2", snap.Dashboard.RowCount)
	}

	stats := c.Stats()
	if stats["datasets"] != 1 {
		t.Errorf("stats datasets = %v, want 1", stats["datasets"])
	}
}
