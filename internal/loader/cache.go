package loader

import (
	"os"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/openairlab/air-quality-service/internal/observability"
)

// Cached memoizes a load Func keyed strictly by (path, file modification
// time). A cached Result is returned until the file's mtime changes, so the
// decorator can never serve a dataset that diverges from the file contents.
// The wrapped load stays pure; all caching lives here.
type Cached struct {
	load    Func
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	modTime  time.Time
	loadedAt time.Time
	result   *Result
}

// Status describes one cached source file, for the status endpoint.
type Status struct {
	Path        string    `json:"path"`
	LoadedAt    time.Time `json:"loaded_at"`
	ModTime     time.Time `json:"mod_time"`
	Rows        int       `json:"rows"`
	SkippedRows int       `json:"skipped_rows"`
}

// NewCached wraps load with a (path, mtime) memoizer. metrics may be nil.
func NewCached(load Func, clock clockwork.Clock, metrics *observability.Metrics) *Cached {
	return &Cached{
		load:    load,
		clock:   clock,
		metrics: metrics,
		entries: make(map[string]*cacheEntry),
	}
}

// Load returns the cached Result for path while the file is unchanged,
// reloading otherwise. Callers share the returned Result and must treat it
// as read-only.
func (c *Cached) Load(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &DataAccessError{Path: path, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok && e.modTime.Equal(info.ModTime()) {
		c.lookup("hit")
		return e.result, nil
	}
	c.lookup("miss")

	result, err := c.load(path)
	if err != nil {
		return nil, err
	}

	c.entries[path] = &cacheEntry{
		modTime:  info.ModTime(),
		loadedAt: c.clock.Now(),
		result:   result,
	}
	return result, nil
}

// Status reports every cached source file, sorted by path.
func (c *Cached) Status() []Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Status, 0, len(c.entries))
	for path, e := range c.entries {
		out = append(out, Status{
			Path:        path,
			LoadedAt:    e.loadedAt,
			ModTime:     e.modTime,
			Rows:        len(e.result.Dataset),
			SkippedRows: len(e.result.Skipped),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (c *Cached) lookup(result string) {
	if c.metrics != nil {
		c.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
