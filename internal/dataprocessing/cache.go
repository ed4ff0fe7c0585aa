package dataprocessing

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	apperrors "metadash/internal/errors"
	"metadash/internal/infrastructure"
)

// cacheKey identifies the file state a cached dataset was built from
type cacheKey struct {
	path    string
	maxRows int
	modTime time.Time
	size    int64
}

// DatasetCache memoizes the cleaned dataset for the dashboard. An entry is
// reused until the path, the row cap, or the file's modification time or
// size changes, or until Invalidate is called.
type DatasetCache struct {
	pipeline *Pipeline
	logger   *slog.Logger
	metrics  *infrastructure.Metrics

	mu      sync.Mutex
	key     cacheKey
	dataset *Dataset
}

// NewDatasetCache creates an empty cache backed by pipeline
func NewDatasetCache(pipeline *Pipeline, logger *slog.Logger, metrics *infrastructure.Metrics) *DatasetCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetCache{
		pipeline: pipeline,
		logger:   logger.With(slog.String("component", "dataset_cache")),
		metrics:  metrics,
	}
}

// Get returns the cached dataset for path and maxRows, loading it when the
// cache is empty or stale. Concurrent callers wait for a single load.
func (c *DatasetCache) Get(ctx context.Context, path string, maxRows int) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.NewInputError("failed to open dataset", err).WithContext("path", path)
	}
	key := cacheKey{
		path:    path,
		maxRows: maxRows,
		modTime: info.ModTime(),
		size:    info.Size(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dataset != nil && c.key == key {
		c.metrics.RecordCache(ctx, true)
		return c.dataset, nil
	}
	c.metrics.RecordCache(ctx, false)

	if c.dataset != nil {
		c.logger.InfoContext(ctx, "dataset changed, reloading",
			slog.String("path", path),
			slog.Int("max_rows", maxRows))
	}

	dataset, err := c.pipeline.Run(ctx, path, maxRows)
	if err != nil {
		return nil, err
	}
	c.key = key
	c.dataset = dataset
	return dataset, nil
}

// Invalidate drops the cached dataset so the next Get reloads it
func (c *DatasetCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dataset = nil
	c.key = cacheKey{}
	c.logger.Info("dataset cache invalidated")
}

// Cached returns the current entry without loading, or nil
func (c *DatasetCache) Cached() *Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dataset
}
