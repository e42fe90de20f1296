// internal/realtime/viewsync_test.go
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// canonicalStore is a stand-in for the listing query a fresh page load runs.
type canonicalStore struct {
	mu    sync.Mutex
	items []Item
}

func (s *canonicalStore) set(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

func (s *canonicalStore) fetch(fetches *atomic.Int64) FetchFunc {
	return func(ctx context.Context) ([]Item, error) {
		fetches.Add(1)
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]Item, len(s.items))
		copy(out, s.items)
		return out, nil
	}
}

func item(id string) Item {
	return Item{ID: id, Data: json.RawMessage(`{"id":"` + id + `"}`)}
}

func runSync(t *testing.T, v *ViewSync, events chan Event) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Run(ctx, events)
	}()
	return func() {
		cancel()
		close(events)
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("view sync did not stop")
		}
	}
}

func waitForItems(t *testing.T, v *ViewSync, want int) []Item {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		items := v.Items()
		if len(items) == want {
			return items
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("view never reached %d items (have %d)", want, len(v.Items()))
	return nil
}

func TestUpdateEventTriggersSingleRefetch(t *testing.T) {
	store := &canonicalStore{}
	store.set([]Item{item("b1")})

	var fetches atomic.Int64
	v := NewViewSync(store.fetch(&fetches))
	require.NoError(t, v.Refresh(context.Background()))
	require.EqualValues(t, 1, fetches.Load())

	events := make(chan Event, 8)
	stop := runSync(t, v, events)
	defer stop()

	store.set([]Item{item("b1"), item("b2")})
	events <- Event{Kind: EventUpdate, Collection: CollectionBooks, RowID: "b2"}

	items := waitForItems(t, v, 2)
	assert.EqualValues(t, 2, fetches.Load(), "exactly one re-fetch for the event")
	assert.Equal(t, "b2", items[1].ID, "view converged to canonical state")
}

func TestEventBurstCostsOneRefetch(t *testing.T) {
	store := &canonicalStore{}
	store.set([]Item{item("b1")})

	var fetches atomic.Int64
	v := NewViewSync(store.fetch(&fetches))
	require.NoError(t, v.Refresh(context.Background()))

	// Queue a burst before the consumer runs: the whole batch drains into
	// a single re-fetch.
	events := make(chan Event, 8)
	store.set([]Item{item("b1"), item("b2"), item("b3")})
	events <- Event{Kind: EventInsert, RowID: "b2"}
	events <- Event{Kind: EventUpdate, RowID: "b1"}
	events <- Event{Kind: EventInsert, RowID: "b3"}

	stop := runSync(t, v, events)
	defer stop()

	waitForItems(t, v, 3)
	assert.EqualValues(t, 2, fetches.Load(), "initial load plus one batch re-fetch")
}

func TestDeleteRemovesLocallyWithoutRefetch(t *testing.T) {
	store := &canonicalStore{}
	store.set([]Item{item("b1"), item("b2")})

	var fetches atomic.Int64
	v := NewViewSync(store.fetch(&fetches))
	require.NoError(t, v.Refresh(context.Background()))
	require.EqualValues(t, 1, fetches.Load())

	events := make(chan Event, 8)
	stop := runSync(t, v, events)
	defer stop()

	events <- Event{Kind: EventDelete, RowID: "b1"}

	items := waitForItems(t, v, 1)
	assert.Equal(t, "b2", items[0].ID)
	assert.EqualValues(t, 1, fetches.Load(), "delete must not re-fetch")
}

func TestTransientFetchFailureKeepsSyncRunning(t *testing.T) {
	store := &canonicalStore{}
	store.set([]Item{item("b1")})

	hook := logtest.NewGlobal()
	defer hook.Reset()

	var fetches atomic.Int64
	var failNext atomic.Bool
	fetch := store.fetch(&fetches)
	v := NewViewSync(func(ctx context.Context) ([]Item, error) {
		if failNext.CompareAndSwap(true, false) {
			fetches.Add(1)
			return nil, errors.New("connection reset")
		}
		return fetch(ctx)
	})
	require.NoError(t, v.Refresh(context.Background()))

	events := make(chan Event, 8)
	stop := runSync(t, v, events)
	defer stop()

	// First event hits a failing fetch: the view keeps its stale contents
	// and the loop stays alive.
	failNext.Store(true)
	events <- Event{Kind: EventUpdate, RowID: "b1"}
	deadline := time.Now().Add(2 * time.Second)
	for fetches.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.EqualValues(t, 2, fetches.Load(), "failed fetch was attempted")
	assert.Len(t, v.Items(), 1)

	// The failure is surfaced, not swallowed.
	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "Failed to refresh view after change event" {
			warned = true
		}
	}
	assert.True(t, warned, "refresh failure must be logged")

	// The next event recovers.
	store.set([]Item{item("b1"), item("b2")})
	events <- Event{Kind: EventInsert, RowID: "b2"}
	waitForItems(t, v, 2)
}

func TestRefreshDiscardedAfterCancellation(t *testing.T) {
	store := &canonicalStore{}
	store.set([]Item{item("b1")})

	var fetches atomic.Int64
	v := NewViewSync(store.fetch(&fetches))
	require.NoError(t, v.Refresh(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store.set([]Item{item("b1"), item("b2")})

	err := v.Refresh(ctx)
	assert.Error(t, err)
	assert.Len(t, v.Items(), 1, "torn-down view must not be mutated")
}
