// internal/handlers/events.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gurukulpustakalaya/backend/internal/realtime"
	"github.com/gurukulpustakalaya/backend/internal/utils"
)

const keepaliveInterval = 15 * time.Second

// EventsHandler streams row-level change events over SSE so catalogue
// views can stay live without polling.
type EventsHandler struct {
	feed realtime.Feed
}

func NewEventsHandler(feed realtime.Feed) *EventsHandler {
	return &EventsHandler{feed: feed}
}

// Stream subscribes the caller to one collection's change feed. The
// optional filter query uses the field=eq.value form; unfiltered streams
// carry every visible change.
func (h *EventsHandler) Stream(c *gin.Context) {
	collection := c.Param("collection")
	if collection != realtime.CollectionBooks && collection != realtime.CollectionPDFs {
		utils.NotFoundResponse(c, "collection")
		return
	}

	filter := realtime.Filter{}
	if expr := c.Query("filter"); expr != "" {
		parsed, err := realtime.ParseFilter(expr)
		if err != nil {
			utils.BadRequestResponse(c, "invalid filter expression", nil)
			return
		}
		filter = parsed
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		utils.InternalErrorResponse(c, "streaming unsupported")
		return
	}

	events, cancel, err := h.feed.Subscribe(c.Request.Context(), collection, filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to subscribe to change feed")
		utils.InternalErrorResponse(c, "")
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-keepalive.C:
			// Comment line keeps intermediaries from closing the stream.
			fmt.Fprint(c.Writer, ": keepalive\n\n")
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				logrus.WithError(err).Warn("Failed to encode change event")
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\nid: %s\ndata: %s\n\n", event.Kind, event.RowID, payload)
			flusher.Flush()
		}
	}
}
