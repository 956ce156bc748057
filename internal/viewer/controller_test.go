// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package viewer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/epicctl/internal/cache"
	"github.com/staranto/epicctl/internal/epic"
)

const archive = "https://epic.example"

// fakeFetcher serves canned answers and counts calls.
type fakeFetcher struct {
	mu        sync.Mutex
	latest    map[string]string
	images    map[Selection][]epic.Record
	err       error
	dateCalls int
	listCalls int
}

func (f *fakeFetcher) LatestDate(ctx context.Context, typ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dateCalls++
	if f.err != nil {
		return "", f.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.latest[typ], nil
}

func (f *fakeFetcher) Images(ctx context.Context, typ, date string) ([]epic.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.images[Selection{Type: typ, Date: date}], nil
}

func newFake() *fakeFetcher {
	f := &fakeFetcher{
		latest: map[string]string{},
		images: map[Selection][]epic.Record{},
	}
	for _, typ := range epic.Types {
		f.latest[typ] = "2024-03-01"
		f.images[Selection{Type: typ, Date: "2024-03-01"}] = threeRecords()
	}
	return f
}

func TestController_SubmitRendersOneRowPerRecord(t *testing.T) {
	ctx := context.Background()
	for _, typ := range epic.Types {
		t.Run(typ, func(t *testing.T) {
			f := newFake()
			c := NewController(f, cache.New(epic.Types), archive)

			st := c.Init(ctx, typ)
			require.Equal(t, "2024-03-01", st.DateMax)

			sel := Selection{Type: typ, Date: st.DateMax}
			st = st.Apply(c.Submit(ctx, sel))

			recs := threeRecords()
			rows := st.Rows.All()
			require.Len(t, rows, len(recs))
			for i, row := range rows {
				assert.Equal(t, i, row.Index)
				assert.Equal(t, recs[i].Date, row.Text)
				assert.True(t, row.Selectable)
			}
			assert.Equal(t, sel, st.Selection)
		})
	}
}

func TestController_EmptyResponse(t *testing.T) {
	f := newFake()
	f.images[Selection{Type: "natural", Date: "2024-02-02"}] = []epic.Record{}
	c := NewController(f, cache.New(epic.Types), archive)

	st := NewState(epic.Types, "natural")
	st = st.Apply(c.Submit(context.Background(), Selection{Type: "natural", Date: "2024-02-02"}))

	assert.Equal(t, []Row{{Index: 0, Text: NoImageText}}, st.Rows.All())
	assert.Equal(t, 0, st.Rows.Selectable())
}

func TestController_FailureRendersErrorRow(t *testing.T) {
	f := newFake()
	c := NewController(f, cache.New(epic.Types), archive)
	ctx := context.Background()

	st := NewState(epic.Types, "natural")
	st = st.Apply(c.Submit(ctx, Selection{Type: "natural", Date: "2024-03-01"}))
	require.Equal(t, 3, st.Rows.Len())

	f.err = &epic.NetworkError{Method: "GET", URL: "u", StatusCode: 500, Status: "500 Internal Server Error"}
	res := c.Submit(ctx, Selection{Type: "natural", Date: "2024-03-02"})
	require.Error(t, res.Err)

	st = st.Apply(res)
	assert.Equal(t, []Row{{Index: 0, Text: ErrorText}}, st.Rows.All())
	assert.Empty(t, st.Images)

	// Failed fetches are not cached.
	_, ok := c.Cache().Images("natural", "2024-03-02")
	assert.False(t, ok)
}

func TestController_DateBoundFailureClearsRows(t *testing.T) {
	f := newFake()
	c := NewController(f, cache.New(epic.Types), archive)
	ctx := context.Background()

	st := c.Init(ctx, "natural")
	st = st.Apply(c.Submit(ctx, Selection{Type: "natural", Date: "2024-03-01"}))
	require.Equal(t, 3, st.Rows.Len())

	f.err = errors.New("boom")
	st.Live.Type = "cloud"
	st = st.Apply(c.TypeChanged(ctx, "cloud"))

	assert.Equal(t, []Row{{Index: 0, Text: ErrorText}}, st.Rows.All())
}

func TestController_SecondSubmitServedFromCache(t *testing.T) {
	f := newFake()
	c := NewController(f, cache.New(epic.Types), archive)
	ctx := context.Background()
	sel := Selection{Type: "enhanced", Date: "2024-03-01"}

	first := c.Submit(ctx, sel)
	require.NoError(t, first.Err)
	assert.False(t, first.Cached)

	second := c.Submit(ctx, sel)
	require.NoError(t, second.Err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, f.listCalls)
	assert.Equal(t, first.Images, second.Images)
	assert.Same(t, &first.Images[0], &second.Images[0])

	st := NewState(epic.Types, "enhanced").Apply(first)
	again := st.Apply(second)
	assert.Equal(t, st.Rows.All(), again.Rows.All())
}

func TestController_DisabledCacheAlwaysFetches(t *testing.T) {
	f := newFake()
	c := NewController(f, cache.New(epic.Types, cache.WithEnabled(false)), archive)
	ctx := context.Background()
	sel := Selection{Type: "enhanced", Date: "2024-03-01"}

	c.Submit(ctx, sel)
	res := c.Submit(ctx, sel)
	assert.False(t, res.Cached)
	assert.Equal(t, 2, f.listCalls)

	c.TypeChanged(ctx, "cloud")
	c.TypeChanged(ctx, "cloud")
	assert.Equal(t, 2, f.dateCalls)
}

func TestController_TypeChangedUsesCachedBound(t *testing.T) {
	f := newFake()
	f.latest["cloud"] = "2023-12-31"
	c := NewController(f, cache.New(epic.Types), archive)
	ctx := context.Background()

	res := c.TypeChanged(ctx, "cloud")
	require.NoError(t, res.Err)
	assert.Equal(t, "2023-12-31", res.DateMax)

	res = c.TypeChanged(ctx, "cloud")
	assert.True(t, res.Cached)
	assert.Equal(t, "2023-12-31", res.DateMax)
	assert.Equal(t, 1, f.dateCalls)
}

func TestController_SelectResolvesAgainstRenderedList(t *testing.T) {
	f := newFake()
	c := NewController(f, cache.New(epic.Types), archive)
	ctx := context.Background()

	st := c.Init(ctx, "natural")
	st = st.Apply(c.Submit(ctx, Selection{Type: "natural", Date: "2024-03-01"}))
	assert.False(t, st.ImageVisible())

	// Changing the live type without resubmitting must not change which
	// archive the row resolves into.
	st.Live.Type = "cloud"

	st, err := c.Select(st, 1)
	require.NoError(t, err)
	require.True(t, st.ImageVisible())

	rec := threeRecords()[1]
	assert.Equal(t, rec.Date, st.Detail.Date)
	assert.Equal(t, rec.Caption, st.Detail.Caption)
	assert.Equal(t, archive+"/archive/natural/2024/03/01/jpg/epic_1b_b.jpg", st.Detail.URL)
}

func TestController_SelectInformationalRow(t *testing.T) {
	f := newFake()
	c := NewController(f, cache.New(epic.Types), archive)

	st := NewState(epic.Types, "natural")
	st = st.Apply(c.Submit(context.Background(), Selection{Type: "natural", Date: "1999-01-01"}))
	require.Equal(t, NoImageText, st.Rows.All()[0].Text)

	_, err := c.Select(st, 0)
	assert.ErrorIs(t, err, ErrNoSuchRow)
	_, err = c.Select(st, 7)
	assert.ErrorIs(t, err, ErrNoSuchRow)
}

func TestController_CancelledSubmitIsIgnoredAndNotCached(t *testing.T) {
	f := newFake()
	c := NewController(f, cache.New(epic.Types), archive)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Submit(ctx, Selection{Type: "natural", Date: "2024-03-01"})
	assert.True(t, res.Cancelled())

	st := NewState(epic.Types, "natural")
	st.Rows.Append("keep", false)
	after := st.Apply(res)
	assert.Equal(t, st.Rows.All(), after.Rows.All())

	_, ok := c.Cache().Images("natural", "2024-03-01")
	assert.False(t, ok)
}

func TestController_InvalidType(t *testing.T) {
	c := NewController(newFake(), cache.New(epic.Types), archive)
	res := c.Submit(context.Background(), Selection{Type: "sepia", Date: "2024-03-01"})
	assert.ErrorIs(t, res.Err, epic.ErrInvalidType)
	res = c.TypeChanged(context.Background(), "sepia")
	assert.ErrorIs(t, res.Err, epic.ErrInvalidType)
}

func TestState_ApplyDateBound(t *testing.T) {
	st := NewState(epic.Types, "")
	assert.Equal(t, "natural", st.Live.Type)

	st.Live.Date = "2030-01-01"
	st = st.Apply(Result{Kind: KindDateBound, Selection: Selection{Type: "natural"}, DateMax: "2024-03-01"})
	assert.Equal(t, "2024-03-01", st.DateMax)
	assert.Equal(t, "2024-03-01", st.Live.Date)

	// A bound for a type that is no longer live is dropped.
	st = st.Apply(Result{Kind: KindDateBound, Selection: Selection{Type: "cloud"}, DateMax: "2020-01-01"})
	assert.Equal(t, "2024-03-01", st.DateMax)
}

func TestController_InvalidDateRendersErrorRow(t *testing.T) {
	f := newFake()
	c := NewController(f, cache.New(epic.Types), archive)
	st := c.Init(context.Background(), "natural")

	for _, d := range []string{"2024-1-5", "2023-1-5", "2024-01-9", ""} {
		res := c.Submit(context.Background(), Selection{Type: "natural", Date: d})
		assert.ErrorIs(t, res.Err, epic.ErrInvalidDate, d)

		st = st.Apply(res)
		rows := st.Rows.All()
		require.Len(t, rows, 1, d)
		assert.Equal(t, ErrorText, rows[0].Text)
	}
}

func TestState_ApplyDateBoundLeavesMalformedDate(t *testing.T) {
	st := NewState(epic.Types, "natural")
	st.Live.Date = "2024-1-5"
	st = st.Apply(Result{Kind: KindDateBound, Selection: Selection{Type: "natural"}, DateMax: "2024-01-02"})
	assert.Equal(t, "2024-1-5", st.Live.Date)
}

func TestClampDate(t *testing.T) {
	tests := []struct {
		date, max, want string
	}{
		{"2030-01-01", "2024-03-01", "2024-03-01"},
		{"2024-03-01", "2024-03-01", "2024-03-01"},
		{"2020-12-31", "2024-03-01", "2020-12-31"},
		{"2024-1-5", "2024-01-02", "2024-1-5"},
		{"2024-01-9", "2024-01-02", "2024-01-9"},
		{"2030-01-01", "", "2030-01-01"},
		{"", "2024-03-01", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampDate(tt.date, tt.max), tt.date)
	}
}

func TestState_ClearRows(t *testing.T) {
	st := NewState(epic.Types, "natural")
	st = st.Apply(Result{Kind: KindImages, Selection: Selection{Type: "natural", Date: "2024-03-01"}, Images: threeRecords()})
	require.Equal(t, 3, st.Rows.Len())

	cleared := st.ClearRows()
	assert.Zero(t, cleared.Rows.Len())
	assert.Empty(t, cleared.Images)
	assert.Equal(t, 3, st.Rows.Len())
}
