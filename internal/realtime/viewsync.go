// internal/realtime/viewsync.go
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Item is one row of a synchronized view.
type Item struct {
	ID   string
	Data json.RawMessage
}

// FetchFunc returns the canonical filtered result set for a view, in the
// same order a fresh page load would produce.
type FetchFunc func(ctx context.Context) ([]Item, error)

// ViewSync applies the client reconciliation policy to a stream of change
// events: inserts and updates trigger one full re-fetch per drained event
// batch (staleness over incremental patching), deletes remove the matching
// item locally with no re-fetch. No delivery order is assumed, since every
// re-fetch re-establishes the canonical view state.
type ViewSync struct {
	fetch FetchFunc

	mu    sync.Mutex
	items []Item
}

func NewViewSync(fetch FetchFunc) *ViewSync {
	return &ViewSync{fetch: fetch}
}

// Items returns a snapshot of the current view contents.
func (v *ViewSync) Items() []Item {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Item, len(v.items))
	copy(out, v.items)
	return out
}

// Refresh performs a full fetch, replacing the local contents. A fetch that
// resolves after ctx is done is discarded rather than written back, so a
// torn-down view is never mutated.
func (v *ViewSync) Refresh(ctx context.Context) error {
	items, err := v.fetch(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	v.mu.Lock()
	v.items = items
	v.mu.Unlock()
	return nil
}

// Run consumes events until the channel closes or ctx ends. Events queued
// behind the first one are drained into a single batch so a burst of
// changes costs one re-fetch, not one per event.
func (v *ViewSync) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			needsFetch := v.apply(event)
			// Drain whatever is already queued into the same batch.
		drain:
			for {
				select {
				case more, ok := <-events:
					if !ok {
						break drain
					}
					if v.apply(more) {
						needsFetch = true
					}
				default:
					break drain
				}
			}
			if needsFetch {
				if err := v.Refresh(ctx); err != nil {
					if ctx.Err() != nil {
						return err
					}
					// Transient fetch failure: the next event triggers
					// another attempt.
					logrus.WithError(err).Warn("Failed to refresh view after change event")
				}
			}
		}
	}
}

// apply handles a single event locally and reports whether the batch needs
// a re-fetch.
func (v *ViewSync) apply(event Event) bool {
	switch event.Kind {
	case EventDelete:
		v.removeByID(event.RowID)
		return false
	default:
		return true
	}
}

func (v *ViewSync) removeByID(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, item := range v.items {
		if item.ID == id {
			v.items = append(v.items[:i], v.items[i+1:]...)
			return
		}
	}
}
