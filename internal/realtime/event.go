// internal/realtime/event.go

// Package realtime is the live view synchronizer: a change feed carrying
// row-level events for named collections, plus the client-side reconciliation
// policy that keeps open listing views consistent with store mutations.
// Delivery is best effort and unordered; consumers re-fetch rather than patch.
package realtime

import (
	"encoding/json"
	"fmt"
	"strings"
)

type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Collections carried on the feed.
const (
	CollectionBooks = "books"
	CollectionPDFs  = "pdfs"
)

// Event identifies a row-level change. Row carries the new row state for
// inserts and updates; delete events carry only the row id.
type Event struct {
	Kind       EventKind       `json:"kind"`
	Collection string          `json:"collection"`
	RowID      string          `json:"row_id"`
	Row        json.RawMessage `json:"row,omitempty"`
}

// Filter is a server-side subscription filter of the form "field=eq.value",
// mirroring the expression clients pass when subscribing (for example
// "status=eq.approved"). The zero Filter matches everything.
type Filter struct {
	Field string
	Value string
}

// ParseFilter parses a filter expression. An empty expression yields the
// match-all filter.
func ParseFilter(expr string) (Filter, error) {
	if expr == "" {
		return Filter{}, nil
	}
	field, rest, ok := strings.Cut(expr, "=")
	if !ok || field == "" {
		return Filter{}, fmt.Errorf("realtime: malformed filter %q", expr)
	}
	value, ok := strings.CutPrefix(rest, "eq.")
	if !ok {
		return Filter{}, fmt.Errorf("realtime: unsupported filter operator in %q", expr)
	}
	return Filter{Field: field, Value: value}, nil
}

// Match reports whether the event passes the filter. Delete events always
// pass: the row is gone, so there is nothing left to test, and subscribers
// need the deletion to drop the item locally.
func (f Filter) Match(e Event) bool {
	if f.Field == "" || e.Kind == EventDelete {
		return true
	}
	if len(e.Row) == 0 {
		return false
	}
	var row map[string]interface{}
	if err := json.Unmarshal(e.Row, &row); err != nil {
		return false
	}
	got, ok := row[f.Field]
	if !ok {
		return false
	}
	return fmt.Sprintf("%v", got) == f.Value
}
