// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFromQuery(query string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsFromQuery("")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
	assert.Empty(t, params.Search)
	assert.Empty(t, params.Status)
}

func TestGetPaginationParamsClampsBadInput(t *testing.T) {
	params := paramsFromQuery("page=0&limit=500&order=sideways")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)

	params = paramsFromQuery("page=-3&limit=-1")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
}

func TestGetPaginationParamsPassesThrough(t *testing.T) {
	params := paramsFromQuery("page=3&limit=50&sort=title&order=asc&search=polo&status=approved")

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 50, params.Limit)
	assert.Equal(t, "title", params.Sort)
	assert.Equal(t, "asc", params.Order)
	assert.Equal(t, "polo", params.Search)
	assert.Equal(t, "approved", params.Status)
}

func TestCreatePaginationResult(t *testing.T) {
	data := []string{"a", "b", "c"}
	result := CreatePaginationResult(data, 45, PaginationParams{Page: 2, Limit: 20})

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, int64(45), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, data, result.Data)

	empty := CreatePaginationResult([]string{}, 0, PaginationParams{Page: 1, Limit: 20})
	assert.Equal(t, 0, empty.TotalPages)
	assert.Equal(t, int64(0), empty.Total)
}
