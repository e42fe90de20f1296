// internal/services/book_service_test.go
package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurukulpustakalaya/backend/internal/models"
	"github.com/gurukulpustakalaya/backend/internal/moderation"
)

// Listing status is assigned server-side: the create payloads have no status
// field for a caller to smuggle one through, and every new item starts pending.
func TestCreateRequestsCannotCarryStatus(t *testing.T) {
	for name, typ := range map[string]reflect.Type{
		"book": reflect.TypeOf(CreateBookRequest{}),
		"pdf":  reflect.TypeOf(CreatePDFRequest{}),
	} {
		_, has := typ.FieldByName("Status")
		assert.False(t, has, "%s create request must not expose a status field", name)
	}

	assert.Equal(t, models.UploadStatusPending, moderation.InitialStatus)
}

func TestCreateBookPayloadDropsStatus(t *testing.T) {
	payload := `{
		"title": "Engineering Mathematics I",
		"author": "E. Kreyszig",
		"price": 450,
		"condition": "good",
		"seller_phone": "9812345678",
		"status": "approved"
	}`

	var req CreateBookRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	assert.Equal(t, "Engineering Mathematics I", req.Title)

	// Nothing in the bound request can override the pending start state.
	repacked, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(repacked), `"status"`)
}
