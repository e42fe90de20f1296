// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/books?"+query, nil)
	return GetPaginationParams(c)
}

func TestPaginationDefaults(t *testing.T) {
	params := paramsForQuery(t, "")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
}

func TestPaginationClampsBadInput(t *testing.T) {
	params := paramsForQuery(t, "page=-3&limit=9999")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)

	params = paramsForQuery(t, "page=abc&limit=xyz")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
}

func TestListingSortFields(t *testing.T) {
	assert.ElementsMatch(t, []string{"created_at", "price", "views_count", "title"}, BookSortFields)
	assert.ElementsMatch(t, []string{"downloads_count", "created_at", "title"}, PDFSortFields)

	// Contact and storage columns must never be orderable from a query string.
	assert.NotContains(t, BookSortFields, "seller_phone")
	assert.NotContains(t, PDFSortFields, "file_key")
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 20}
	result := CreatePaginationResult(nil, 45, params)

	assert.Equal(t, int64(45), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
}

func TestCreatePaginationResultEmpty(t *testing.T) {
	result := CreatePaginationResult(nil, 0, PaginationParams{Page: 1, Limit: 20})
	assert.Equal(t, 0, result.TotalPages)
}
