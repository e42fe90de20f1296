// internal/realtime/event_test.go
package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("status=eq.approved")
	require.NoError(t, err)
	assert.Equal(t, "status", f.Field)
	assert.Equal(t, "approved", f.Value)

	f, err = ParseFilter("")
	require.NoError(t, err)
	assert.Empty(t, f.Field)

	_, err = ParseFilter("status")
	assert.Error(t, err)

	_, err = ParseFilter("status=gt.5")
	assert.Error(t, err)
}

func TestFilterMatch(t *testing.T) {
	f := Filter{Field: "status", Value: "approved"}

	approved := Event{
		Kind:       EventUpdate,
		Collection: CollectionBooks,
		RowID:      "b1",
		Row:        json.RawMessage(`{"id":"b1","status":"approved"}`),
	}
	pending := Event{
		Kind:       EventInsert,
		Collection: CollectionBooks,
		RowID:      "b2",
		Row:        json.RawMessage(`{"id":"b2","status":"pending"}`),
	}

	assert.True(t, f.Match(approved))
	assert.False(t, f.Match(pending))

	// Delete events always pass so views can drop rows locally.
	assert.True(t, f.Match(Event{Kind: EventDelete, RowID: "b1"}))

	// Events without a row payload cannot satisfy a field filter.
	assert.False(t, f.Match(Event{Kind: EventUpdate, RowID: "b3"}))

	// The zero filter matches everything.
	assert.True(t, Filter{}.Match(pending))
}
