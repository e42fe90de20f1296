// internal/realtime/feed.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Feed publishes row-level change events and fans them out to subscribers.
type Feed interface {
	// Publish emits an event for a collection. Failures are reported but
	// callers treat publishing as best effort: a missed event only delays
	// a view until its next full fetch.
	Publish(ctx context.Context, event Event) error

	// Subscribe returns a channel of events for the collection matching the
	// filter, and a cancel function tearing the subscription down. The
	// channel is closed on cancel or when ctx ends.
	Subscribe(ctx context.Context, collection string, filter Filter) (<-chan Event, func(), error)
}

// RedisFeed implements Feed over Redis pub/sub, one channel per collection.
type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

func channelFor(collection string) string {
	return "changes:" + collection
}

func (f *RedisFeed) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := f.client.Publish(ctx, channelFor(event.Collection), payload).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

func (f *RedisFeed) Subscribe(ctx context.Context, collection string, filter Filter) (<-chan Event, func(), error) {
	pubsub := f.client.Subscribe(ctx, channelFor(collection))

	// Force the subscription onto the wire before returning so callers
	// never miss events published immediately after Subscribe.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logrus.WithError(err).Warn("Dropping malformed change event")
					continue
				}
				if !filter.Match(event) {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cancel := func() {
		pubsub.Close()
	}
	return out, cancel, nil
}
