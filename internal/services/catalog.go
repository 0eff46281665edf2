package services

import (
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"datalens/internal/dataset"
	"datalens/internal/insight"
)

const cacheVersion = "v1"

// Snapshot is one assembled dataset: the dashboard plus ingestion metadata.
type Snapshot struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Source    string             `json:"source"`
	LoadedAt  time.Time          `json:"loaded_at"`
	Dashboard *insight.Dashboard `json:"dashboard"`
}

// Summary is the list-view projection of a snapshot.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
	MetricCount int       `json:"metric_count"`
	ChartCount  int       `json:"chart_count"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// Catalog ingests CSV files and holds the assembled dashboards. Files are
// independent, so ingestion fans out over a bounded worker pool; reads after
// loading are lock-cheap map lookups.
type Catalog struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot

	assembler *insight.Assembler
	cacheDir  string
	workers   int
	logger    *slog.Logger
	processed atomic.Int64
}

func NewCatalog(cacheDir string, workers int) *Catalog {
	if workers < 1 {
		workers = 1
	}
	return &Catalog{
		snapshots: make(map[string]*Snapshot),
		assembler: insight.NewAssembler(),
		cacheDir:  cacheDir,
		workers:   workers,
		logger:    slog.Default(),
	}
}

// SetTable assembles a table directly under the given name, bypassing file
// I/O. Used by tests and by callers that parse uploads themselves.
func (c *Catalog) SetTable(name string, t *dataset.Table) {
	snap := &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		LoadedAt:  time.Now(),
		Dashboard: c.assembler.Assemble(t),
	}

	c.mu.Lock()
	c.snapshots[name] = snap
	c.mu.Unlock()
}

// LoadDir ingests every CSV file in dir, one assembly per file on the worker
// pool. A file that fails to parse is logged and skipped; LoadDir errors only
// when the directory is unreadable or nothing at all could be loaded.
func (c *Catalog) LoadDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read data dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return fmt.Errorf("no CSV files in %s", dir)
	}

	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err := c.LoadFile(path); err != nil {
				c.logger.Warn("skipping dataset", "path", path, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.mu.RLock()
	loaded := len(c.snapshots)
	c.mu.RUnlock()
	if loaded == 0 {
		return fmt.Errorf("no datasets loaded from %s", dir)
	}

	c.logger.Info("datasets loaded",
		"count", loaded,
		"files", len(paths),
		"duration", time.Since(start),
	)
	return nil
}

// LoadFile ingests a single CSV file, serving from the gob cache when the
// file has not changed since the cached assembly.
func (c *Catalog) LoadFile(path string) error {
	name := datasetName(path)

	if cached, err := c.readCache(path); err == nil {
		if info, err := os.Stat(path); err == nil && info.ModTime().Before(cached.LoadedAt) {
			c.mu.Lock()
			c.snapshots[name] = cached
			c.mu.Unlock()
			c.logger.Info("dataset loaded from cache", "name", name)
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	table, err := dataset.FromCSV(data)
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}

	snap := &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    path,
		LoadedAt:  time.Now(),
		Dashboard: c.assembler.Assemble(table),
	}

	c.mu.Lock()
	c.snapshots[name] = snap
	c.mu.Unlock()
	c.processed.Add(1)

	if err := c.writeCache(path, snap); err != nil {
		c.logger.Warn("failed to cache dashboard", "name", name, "error", err)
	}

	c.logger.Info("dataset assembled",
		"name", name,
		"rows", snap.Dashboard.RowCount,
		"columns", snap.Dashboard.ColumnCount,
		"metrics", len(snap.Dashboard.Metrics),
		"charts", len(snap.Dashboard.Charts),
	)
	return nil
}

// Datasets lists summaries sorted by name.
func (c *Catalog) Datasets() []Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summaries := make([]Summary, 0, len(c.snapshots))
	for _, s := range c.snapshots {
		summaries = append(summaries, Summary{
			ID:          s.ID,
			Name:        s.Name,
			RowCount:    s.Dashboard.RowCount,
			ColumnCount: s.Dashboard.ColumnCount,
			MetricCount: len(s.Dashboard.Metrics),
			ChartCount:  len(s.Dashboard.Charts),
			LoadedAt:    s.LoadedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries
}

// Dashboard returns the assembled dashboard for one dataset.
func (c *Catalog) Dashboard(name string) (*insight.Dashboard, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.snapshots[name]
	if !ok {
		return nil, false
	}
	return s.Dashboard, true
}

// Snapshot returns the full snapshot for one dataset.
func (c *Catalog) Snapshot(name string) (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.snapshots[name]
	return s, ok
}

// Stats reports catalog shape for the admin endpoint.
func (c *Catalog) Stats() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	metrics, charts := 0, 0
	for _, s := range c.snapshots {
		metrics += len(s.Dashboard.Metrics)
		charts += len(s.Dashboard.Charts)
	}
	return map[string]any{
		"datasets":        len(c.snapshots),
		"metrics":         metrics,
		"charts":          charts,
		"files_processed": c.processed.Load(),
	}
}

func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (c *Catalog) cachePath(sourcePath string) string {
	flat := strings.NewReplacer("/", "_", "\\", "_").Replace(sourcePath)
	return filepath.Join(c.cacheDir, fmt.Sprintf("%s_%s.gob", flat, cacheVersion))
}

func (c *Catalog) writeCache(sourcePath string, snap *Snapshot) error {
	if c.cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return err
	}
	f, err := os.Create(c.cachePath(sourcePath))
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(snap)
}

func (c *Catalog) readCache(sourcePath string) (*Snapshot, error) {
	if c.cacheDir == "" {
		return nil, fmt.Errorf("cache disabled")
	}
	f, err := os.Open(c.cachePath(sourcePath))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
