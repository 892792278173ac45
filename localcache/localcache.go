// Package localcache is a node-local key/value cache backed by BadgerDB. It
// holds the large, slow-changing player catalog behind an explicit freshness
// window, plus the session's selection keys so a restart can resume where
// the user left off.
package localcache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/itbasis/go-clock"

	"github.com/RyShoe8/fantasyfootball/model"
)

// Key layout. Everything is JSON-encoded.
const (
	catalogKey          = "catalog:players"
	catalogFetchedAtKey = "catalog:fetched_at"
	selectionKey        = "session:selection"
)

var ErrNotCached = errors.New("not cached")

// Selection is the persisted slice of session state: who is logged in and
// what league/year/week they are looking at.
type Selection struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	LeagueID string `json:"league_id"`
	Year     string `json:"year"`
	Week     int    `json:"week"`
}

type Cache struct {
	db    *badger.DB
	clock clock.Clock
}

func New(dir string, clock clock.Clock) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error opening local cache at %s: %w", dir, err)
	}
	return &Cache{db: db, clock: clock}, nil
}

// NewInMemory returns a cache that is not persisted, for tests.
func NewInMemory(clock clock.Clock) (*Cache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error opening in-memory cache: %w", err)
	}
	return &Cache{db: db, clock: clock}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveCatalog stores the player catalog and stamps it with the current time,
// restarting the freshness window.
func (c *Cache) SaveCatalog(players map[string]model.Player) error {
	data, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("error marshaling catalog: %w", err)
	}
	ts, err := c.clock.Now().UTC().MarshalText()
	if err != nil {
		return err
	}

	return c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(catalogKey), data); err != nil {
			return fmt.Errorf("error setting catalog: %w", err)
		}
		if err := txn.Set([]byte(catalogFetchedAtKey), ts); err != nil {
			return fmt.Errorf("error setting catalog timestamp: %w", err)
		}
		return nil
	})
}

// Catalog returns the cached catalog and the time it was fetched, or
// ErrNotCached when no copy has ever been stored.
func (c *Cache) Catalog() (map[string]model.Player, time.Time, error) {
	var players map[string]model.Player
	var fetchedAt time.Time

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(catalogKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotCached
		}
		if err != nil {
			return fmt.Errorf("error getting catalog: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &players)
		}); err != nil {
			return fmt.Errorf("error unmarshaling catalog: %w", err)
		}

		item, err = txn.Get([]byte(catalogFetchedAtKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // catalog without a timestamp is treated as stale
		}
		if err != nil {
			return fmt.Errorf("error getting catalog timestamp: %w", err)
		}
		return item.Value(func(val []byte) error {
			return fetchedAt.UnmarshalText(val)
		})
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return players, fetchedAt, nil
}

// CatalogFresh reports whether a cached catalog exists and was fetched
// within the window.
func (c *Cache) CatalogFresh(window time.Duration) bool {
	_, fetchedAt, err := c.Catalog()
	if err != nil || fetchedAt.IsZero() {
		return false
	}
	return c.clock.Now().UTC().Sub(fetchedAt) < window
}

func (c *Cache) SaveSelection(sel *Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("error marshaling selection: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(selectionKey), data)
	})
}

func (c *Cache) Selection() (*Selection, error) {
	var sel Selection
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(selectionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotCached
		}
		if err != nil {
			return fmt.Errorf("error getting selection: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sel)
		})
	})
	if err != nil {
		return nil, err
	}
	return &sel, nil
}

// ClearSelection removes the session keys on logout. The catalog is
// league-independent and survives.
func (c *Cache) ClearSelection() error {
	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(selectionKey))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("error deleting selection: %w", err)
		}
		return nil
	})
}
