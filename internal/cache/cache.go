// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"fmt"
	"sync"

	"github.com/apex/log"

	"github.com/staranto/epicctl/internal/epic"
)

// entry is everything remembered for one type.
type entry struct {
	// maxDate is "" until the type's date ceiling has been fetched.
	maxDate string
	images  map[string][]epic.Record
}

// Stats counts image lookups.
type Stats struct {
	Hits   int
	Misses int
}

// Cache memoizes max dates per type and record lists per (type, date). There
// is no expiry, bound or invalidation; entries live as long as the Cache.
// Every type is registered up front. Touching an unregistered type is a
// programming error and panics.
type Cache struct {
	mu      sync.RWMutex
	enabled bool
	entries map[string]*entry
	stats   Stats
}

// Option customizes a Cache.
type Option func(*Cache)

// WithEnabled selects the caching policy. A disabled cache never hits and
// drops every write, so callers always go to the network.
func WithEnabled(enabled bool) Option {
	return func(c *Cache) { c.enabled = enabled }
}

// New returns an enabled cache with an empty entry for each type.
func New(types []string, opts ...Option) *Cache {
	c := &Cache{
		enabled: true,
		entries: make(map[string]*entry, len(types)),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, t := range types {
		c.entries[t] = &entry{images: make(map[string][]epic.Record)}
	}
	return c
}

// Enabled reports the caching policy.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// Images returns the record list stored for (typ, date). The returned slice
// is the one that was stored, not a copy.
func (c *Cache) Images(typ, date string) ([]epic.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.mustEntry(typ)
	if !c.enabled {
		c.stats.Misses++
		return nil, false
	}

	recs, ok := e.images[date]
	if ok {
		c.stats.Hits++
		log.Debugf("cache hit: %s/%s (%d records)", typ, date, len(recs))
	} else {
		c.stats.Misses++
	}
	return recs, ok
}

// SetImages stores recs for (typ, date), replacing whatever was there.
func (c *Cache) SetImages(typ, date string, recs []epic.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.mustEntry(typ)
	if !c.enabled {
		return
	}
	if recs == nil {
		recs = []epic.Record{}
	}
	e.images[date] = recs
}

// MaxDate returns the cached date ceiling for typ.
func (c *Cache) MaxDate(typ string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e := c.mustEntry(typ)
	if !c.enabled || e.maxDate == "" {
		return "", false
	}
	return e.maxDate, true
}

// SetMaxDate records the date ceiling for typ.
func (c *Cache) SetMaxDate(typ, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.mustEntry(typ)
	if !c.enabled {
		return
	}
	e.maxDate = date
}

// Stats returns a snapshot of the lookup counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// mustEntry must be called with mu held.
func (c *Cache) mustEntry(typ string) *entry {
	e, ok := c.entries[typ]
	if !ok {
		panic(fmt.Sprintf("cache: type %q was never registered", typ))
	}
	return e
}
