// internal/handlers/events_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurukulpustakalaya/backend/internal/realtime"
)

func eventsRouter(feed realtime.Feed) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/events/:collection", NewEventsHandler(feed).Stream)
	return r
}

func TestStreamRejectsUnknownCollection(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/orders", nil)
	eventsRouter(nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamRejectsMalformedFilter(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/books?filter=status%3D%3Dapproved", nil)
	eventsRouter(nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamDeliversPublishedEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	feed := realtime.NewRedisFeed(client)

	router := eventsRouter(feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/books", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		router.ServeHTTP(w, req)
		close(done)
	}()

	// Give the subscriber a moment to attach before publishing.
	time.Sleep(100 * time.Millisecond)

	event := realtime.Event{
		Kind:       realtime.EventInsert,
		Collection: realtime.CollectionBooks,
		RowID:      "b-1",
		Row:        json.RawMessage(`{"id":"b-1","status":"approved"}`),
	}
	require.NoError(t, feed.Publish(context.Background(), event))

	// Let the handler write the frame, then tear the stream down.
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	body := w.Body.String()
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(body, "event: insert"), "body: %s", body)
	assert.True(t, strings.Contains(body, "id: b-1"), "body: %s", body)
	assert.True(t, strings.Contains(body, `"collection":"books"`), "body: %s", body)
}
