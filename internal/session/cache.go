package session

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/prdpilot/prdpilot/internal/conversation"
)

// defaultCacheSize bounds how many rehydrated states stay in memory.
const defaultCacheSize = 64

// CachedStore wraps Store with an in-memory LRU of rehydrated states so
// that the common answer→save→answer loop skips the decode round-trip.
// Writes go through to SQLite before the cache is updated.
type CachedStore struct {
	*Store
	states *lru.Cache[string, *conversation.State]
}

// NewCached wraps a Store with an LRU state cache. A size of zero or
// less selects the default.
func NewCached(store *Store, size int) (*CachedStore, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	states, err := lru.New[string, *conversation.State](size)
	if err != nil {
		return nil, fmt.Errorf("session: create state cache: %w", err)
	}
	return &CachedStore{Store: store, states: states}, nil
}

// LoadState returns the cached state when present, falling back to the
// database.
func (c *CachedStore) LoadState(id string) (*conversation.State, error) {
	if state, ok := c.states.Get(id); ok {
		return state, nil
	}

	state, err := c.Store.LoadState(id)
	if err != nil {
		return nil, err
	}
	c.states.Add(id, state)
	return state, nil
}

// SaveState persists the state and refreshes the cache entry.
func (c *CachedStore) SaveState(id string, state *conversation.State) error {
	if err := c.Store.SaveState(id, state); err != nil {
		return err
	}
	c.states.Add(id, state)
	return nil
}

// Archive archives the session and evicts its cached state.
func (c *CachedStore) Archive(id string) error {
	if err := c.Store.Archive(id); err != nil {
		return err
	}
	c.states.Remove(id)
	return nil
}
