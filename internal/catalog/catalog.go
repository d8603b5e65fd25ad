// Package catalog loads and indexes the orb library.
//
// The library is built once at startup and cached in memory. Reloads build
// a complete fresh snapshot and publish it with an atomic pointer swap, so
// concurrent readers always observe either the full old catalog or the full
// new one, never a partially built index.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ShayCichocki/orbit/pkg/models"
)

// Store abstracts the backing store orb records are read from.
type Store interface {
	// Load reads all orb records in insertion order.
	Load(ctx context.Context) ([]models.Orb, error)
	// Path identifies the store location for diagnostics.
	Path() string
}

// Snapshot is an immutable, fully indexed view of the orb library.
// All fields are read-only after Build returns.
type Snapshot struct {
	// Orbs holds every record in catalog insertion order. Match ranking
	// uses this order as the deterministic tie-break.
	Orbs []models.Orb

	// byKeyword maps a normalized keyword token to orb positions.
	byKeyword map[string][]int
	// byCategory maps a category name to orb positions.
	byCategory map[string][]int

	// Version increments on every successful reload.
	Version int
	// LoadedAt is when this snapshot was built.
	LoadedAt time.Time
}

// Build validates records and constructs the indexes for a snapshot.
// Any record failing schema validation aborts the build entirely; a
// corrupted catalog must never serve a degraded index.
func Build(orbs []models.Orb, version int) (*Snapshot, error) {
	snap := &Snapshot{
		Orbs:       make([]models.Orb, 0, len(orbs)),
		byKeyword:  make(map[string][]int),
		byCategory: make(map[string][]int),
		Version:    version,
		LoadedAt:   time.Now(),
	}

	for i, orb := range orbs {
		if err := orb.Validate(); err != nil {
			return nil, &InvalidRecordError{Position: i, OrbID: orb.ID, Err: err}
		}

		pos := len(snap.Orbs)
		snap.Orbs = append(snap.Orbs, orb)

		seen := make(map[string]bool)
		for _, kw := range orb.Keywords {
			for _, token := range Tokenize(kw) {
				if seen[token] {
					continue
				}
				seen[token] = true
				snap.byKeyword[token] = append(snap.byKeyword[token], pos)
			}
		}
		snap.byCategory[orb.Category] = append(snap.byCategory[orb.Category], pos)
	}

	return snap, nil
}

// OrbsWithKeyword returns the positions of orbs indexed under the given
// normalized token. The returned slice must not be modified.
func (s *Snapshot) OrbsWithKeyword(token string) []int {
	return s.byKeyword[token]
}

// OrbsInCategory returns the positions of orbs in the given category.
// The returned slice must not be modified.
func (s *Snapshot) OrbsInCategory(category string) []int {
	return s.byCategory[category]
}

// Stats summarizes the snapshot. It never mutates the snapshot.
func (s *Snapshot) Stats() models.LibraryStats {
	stats := models.LibraryStats{
		TotalOrbs:  len(s.Orbs),
		Categories: make(map[string]int, len(s.byCategory)),
	}
	for category, positions := range s.byCategory {
		stats.Categories[category] = len(positions)
	}
	stats.CategoryCount = len(stats.Categories)
	return stats
}

// Library owns the current snapshot and the store it loads from.
// The read path (Snapshot, Stats) takes no locks.
type Library struct {
	store  Store
	logger *DebugLogger

	// reloadMu serializes Load/Reload; readers never take it.
	reloadMu sync.Mutex
	current  atomic.Pointer[Snapshot]
	version  int
}

// NewLibrary creates a library backed by the given store.
// Call Load before serving evaluations.
func NewLibrary(store Store, logger *DebugLogger) *Library {
	if logger == nil {
		logger = NopLogger()
	}
	return &Library{store: store, logger: logger}
}

// Load reads all orb records from the store and builds the first snapshot.
// It fails fast if the store is unreadable or any record is invalid.
func (l *Library) Load(ctx context.Context) error {
	return l.Reload(ctx)
}

// Reload builds a complete fresh snapshot and publishes it atomically.
// On failure the previous snapshot, if any, stays in service.
func (l *Library) Reload(ctx context.Context) error {
	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()

	orbs, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("read orb catalog %s: %w", l.store.Path(), err)
	}

	snap, err := Build(orbs, l.version+1)
	if err != nil {
		return fmt.Errorf("build orb catalog %s: %w", l.store.Path(), err)
	}

	l.version = snap.Version
	l.current.Store(snap)
	l.logger.Log("catalog loaded: %d orbs, %d categories, version %d",
		len(snap.Orbs), len(snap.byCategory), snap.Version)
	return nil
}

// Snapshot returns the current catalog snapshot, or nil before Load.
func (l *Library) Snapshot() *Snapshot {
	return l.current.Load()
}

// Stats summarizes the current snapshot. Always succeeds; before the
// first Load it reports an empty library.
func (l *Library) Stats() models.LibraryStats {
	snap := l.current.Load()
	if snap == nil {
		return models.LibraryStats{Categories: map[string]int{}}
	}
	return snap.Stats()
}
