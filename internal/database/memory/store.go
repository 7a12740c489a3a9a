// Package memory is an in-process store implementing the repository
// interfaces with the same uniqueness and reference rules as the PostgreSQL
// schema. Transactions are serialized: a ProgressTx works on a private copy of
// the data that replaces the shared copy on Commit.
//
// There is one writer lock for the whole store, so writes for different
// players queue behind each other instead of running in parallel as they do
// on PostgreSQL. Waiting writers give up when their context is done. Use the
// postgres store where per-player write concurrency matters.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

type inventoryKey struct {
	playerID int64
	itemID   int64
}

type data struct {
	seq map[string]int64

	players      map[int64]domain.Player
	bosses       map[int64]domain.Boss
	phases       map[int64]domain.Phase
	rarities     map[int64]domain.Rarity
	items        map[int64]domain.Item
	achievements map[int64]domain.Achievement
	inventory    map[inventoryKey]domain.InventoryEntry
	completions  map[int64]domain.PhaseCompletion
	grants       map[int64]domain.AchievementGrant
	battles      []domain.BattleRecord
}

func newData() *data {
	return &data{
		seq:          map[string]int64{},
		players:      map[int64]domain.Player{},
		bosses:       map[int64]domain.Boss{},
		phases:       map[int64]domain.Phase{},
		rarities:     map[int64]domain.Rarity{},
		items:        map[int64]domain.Item{},
		achievements: map[int64]domain.Achievement{},
		inventory:    map[inventoryKey]domain.InventoryEntry{},
		completions:  map[int64]domain.PhaseCompletion{},
		grants:       map[int64]domain.AchievementGrant{},
	}
}

func (d *data) clone() *data {
	return &data{
		seq:          maps.Clone(d.seq),
		players:      maps.Clone(d.players),
		bosses:       maps.Clone(d.bosses),
		phases:       maps.Clone(d.phases),
		rarities:     maps.Clone(d.rarities),
		items:        maps.Clone(d.items),
		achievements: maps.Clone(d.achievements),
		inventory:    maps.Clone(d.inventory),
		completions:  maps.Clone(d.completions),
		grants:       maps.Clone(d.grants),
		battles:      slices.Clone(d.battles),
	}
}

func (d *data) next(table string) int64 {
	d.seq[table]++
	return d.seq[table]
}

// Store is the shared in-memory state. The zero value is not usable; call New.
type Store struct {
	// writer serializes every writer, transactional or not
	writer *semaphore.Weighted
	// mu guards the d pointer and reads of it
	mu  sync.RWMutex
	d   *data
	now func() time.Time
}

// New returns an empty store
func New() *Store {
	return &Store{d: newData(), writer: semaphore.NewWeighted(1), now: time.Now}
}

// Players returns the store as a repository.Player
func (s *Store) Players() *PlayerRepository { return &PlayerRepository{s: s} }

// Catalog returns the store as a repository.Catalog
func (s *Store) Catalog() *CatalogRepository { return &CatalogRepository{s: s} }

// Progress returns the store as a repository.Progress
func (s *Store) Progress() *ProgressRepository { return &ProgressRepository{s: s} }

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op
func (s *Store) Close() {}

func (s *Store) read(fn func(d *data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.d)
}

// write applies fn to a copy and publishes it only when fn succeeds
func (s *Store) write(ctx context.Context, fn func(d *data) error) error {
	if err := s.writer.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.writer.Release(1)

	s.mu.RLock()
	work := s.d.clone()
	s.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}

	s.mu.Lock()
	s.d = work
	s.mu.Unlock()
	return nil
}

func sortedValues[K comparable, V any](m map[K]V, key func(V) int64) []V {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b V) int { return cmp.Compare(key(a), key(b)) })
	return out
}
