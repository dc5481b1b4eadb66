// internal/router/router_test.go
package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/teeloom/teeloom-backend/internal/config"
)

func TestInitializeRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Initialize(nil, &config.Config{})

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /v1/auth/register",
		"PUT /v1/profile/portfolio",
		"POST /v1/requests",
		"GET /v1/requests/board",
		"POST /v1/designs",
		"PUT /v1/designs/:id/canvases/:region",
		"PUT /v1/designs/:id/canvases/:region/thumbnail",
		"POST /v1/designs/:id/canvases/:region/images",
		"POST /v1/designs/:id/previews",
		"POST /v1/billing/invoices",
		"PUT /v1/admin/requests/:id/approve",
		"GET /v1/admin/audit-logs",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route not registered: %s", route)
	}
}
