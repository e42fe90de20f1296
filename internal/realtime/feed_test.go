// internal/realtime/feed_test.go
package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeed(t *testing.T) *RedisFeed {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisFeed(client)
}

func waitForEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "event channel closed early")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
		return Event{}
	}
}

func TestRedisFeedRoundTrip(t *testing.T) {
	feed := newTestFeed(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, unsubscribe, err := feed.Subscribe(ctx, CollectionBooks, Filter{})
	require.NoError(t, err)
	defer unsubscribe()

	published := Event{
		Kind:       EventInsert,
		Collection: CollectionBooks,
		RowID:      "b1",
		Row:        json.RawMessage(`{"id":"b1","status":"pending"}`),
	}
	require.NoError(t, feed.Publish(ctx, published))

	got := waitForEvent(t, events)
	assert.Equal(t, EventInsert, got.Kind)
	assert.Equal(t, "b1", got.RowID)
	assert.JSONEq(t, string(published.Row), string(got.Row))
}

func TestRedisFeedServerSideFilter(t *testing.T) {
	feed := newTestFeed(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	filter, err := ParseFilter("status=eq.approved")
	require.NoError(t, err)

	events, unsubscribe, err := feed.Subscribe(ctx, CollectionBooks, filter)
	require.NoError(t, err)
	defer unsubscribe()

	// A pending row must not reach the subscriber; the approved one must.
	require.NoError(t, feed.Publish(ctx, Event{
		Kind: EventUpdate, Collection: CollectionBooks, RowID: "skip",
		Row: json.RawMessage(`{"id":"skip","status":"pending"}`),
	}))
	require.NoError(t, feed.Publish(ctx, Event{
		Kind: EventUpdate, Collection: CollectionBooks, RowID: "keep",
		Row: json.RawMessage(`{"id":"keep","status":"approved"}`),
	}))

	got := waitForEvent(t, events)
	assert.Equal(t, "keep", got.RowID)
}

func TestRedisFeedCollectionsAreIsolated(t *testing.T) {
	feed := newTestFeed(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, unsubscribe, err := feed.Subscribe(ctx, CollectionPDFs, Filter{})
	require.NoError(t, err)
	defer unsubscribe()

	require.NoError(t, feed.Publish(ctx, Event{
		Kind: EventInsert, Collection: CollectionBooks, RowID: "book-only",
	}))
	require.NoError(t, feed.Publish(ctx, Event{
		Kind: EventDelete, Collection: CollectionPDFs, RowID: "p1",
	}))

	got := waitForEvent(t, events)
	assert.Equal(t, "p1", got.RowID)
	assert.Equal(t, EventDelete, got.Kind)
}

func TestSubscribeTearsDownOnCancel(t *testing.T) {
	feed := newTestFeed(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, unsubscribe, err := feed.Subscribe(ctx, CollectionBooks, Filter{})
	require.NoError(t, err)
	defer unsubscribe()

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should close after cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("event channel did not close after cancellation")
	}
}
