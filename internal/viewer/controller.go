// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/epicctl/internal/cache"
	"github.com/staranto/epicctl/internal/epic"
)

// ErrNoSuchRow is returned when a selection does not resolve to a record.
var ErrNoSuchRow = errors.New("no image at that row")

// Fetcher is the upstream API as the controller sees it. *epic.Client
// implements it.
type Fetcher interface {
	LatestDate(ctx context.Context, typ string) (string, error)
	Images(ctx context.Context, typ, date string) ([]epic.Record, error)
}

// Controller decides between cache and network for each user action. All
// methods block until their fetch completes; run them on a goroutine to keep
// a UI responsive and cancel ctx to abandon one.
type Controller struct {
	fetcher     Fetcher
	cache       *cache.Cache
	archiveBase string
}

// NewController wires a controller. archiveBase is the host used for image
// URLs, usually the same host the fetcher talks to.
func NewController(f Fetcher, c *cache.Cache, archiveBase string) *Controller {
	if c == nil {
		c = cache.New(epic.Types, cache.WithEnabled(false))
	}
	return &Controller{fetcher: f, cache: c, archiveBase: archiveBase}
}

// Cache exposes the controller's cache.
func (c *Controller) Cache() *cache.Cache {
	return c.cache
}

// Init builds the initial state for typ and primes its date ceiling.
func (c *Controller) Init(ctx context.Context, typ string) State {
	st := NewState(epic.Types, typ)
	return st.Apply(c.TypeChanged(ctx, st.Live.Type))
}

// Submit produces the record list for sel. With caching enabled a previous
// successful fetch of the same pair is returned without a network call;
// otherwise the list is fetched and, on success, cached.
func (c *Controller) Submit(ctx context.Context, sel Selection) Result {
	res := Result{Kind: KindImages, Selection: sel}

	if !epic.ValidType(sel.Type) {
		res.Err = fmt.Errorf("%w: %q", epic.ErrInvalidType, sel.Type)
		return res
	}
	if !epic.ValidDate(sel.Date) {
		res.Err = fmt.Errorf("%w: %q", epic.ErrInvalidDate, sel.Date)
		log.WithError(res.Err).Error("refusing to fetch images")
		return res
	}

	if recs, ok := c.cache.Images(sel.Type, sel.Date); ok {
		res.Images = recs
		res.Cached = true
		return res
	}

	recs, err := c.fetcher.Images(ctx, sel.Type, sel.Date)
	if err == nil {
		// Superseded while in flight. Don't let a late answer into the cache.
		err = ctx.Err()
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.WithError(err).Errorf("failed to fetch images for %s/%s", sel.Type, sel.Date)
		}
		res.Err = err
		return res
	}

	c.cache.SetImages(sel.Type, sel.Date, recs)
	res.Images = recs
	return res
}

// TypeChanged produces the date ceiling for typ, from the cache when it is
// enabled and already knows it, otherwise from the network.
func (c *Controller) TypeChanged(ctx context.Context, typ string) Result {
	res := Result{Kind: KindDateBound, Selection: Selection{Type: typ}}

	if !epic.ValidType(typ) {
		res.Err = fmt.Errorf("%w: %q", epic.ErrInvalidType, typ)
		return res
	}

	if d, ok := c.cache.MaxDate(typ); ok {
		res.DateMax = d
		res.Cached = true
		return res
	}

	d, err := c.fetcher.LatestDate(ctx, typ)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.WithError(err).Errorf("failed to fetch max date for %s", typ)
		}
		res.Err = err
		return res
	}

	c.cache.SetMaxDate(typ, d)
	res.DateMax = d
	return res
}

// Select presents the record behind the row at index. It resolves against
// the list and type snapshotted when the rows were rendered.
func (c *Controller) Select(st State, index int) (State, error) {
	row, ok := st.Rows.At(index)
	if !ok || !row.Selectable || index >= len(st.Images) {
		return st, fmt.Errorf("%w: %d", ErrNoSuchRow, index)
	}

	d, err := Present(c.archiveBase, st.Selection.Type, st.Images[index])
	if err != nil {
		log.WithError(err).Errorf("failed to present row %d", index)
		return st, err
	}
	st.Detail = &d
	return st, nil
}
