package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// availableEndpoints is listed in 404 responses for unknown API paths.
var availableEndpoints = []string{
	"GET /api/items",
	"GET /api/items/category/<category>",
	"POST /api/items",
	"PUT /api/items/<id>",
	"DELETE /api/items/<id>",
	"POST /api/bills",
	"GET /api/bills",
	"GET /api/statistics",
	"GET /api/status",
	"POST /api/auth/login",
}

type systemHandler struct {
	status  Status
	stats   Statistics
	version string
}

// Health handles GET /health. It always answers 200 so that load balancers
// can tell a running process from a dead one; the body carries the verdict.
func (h *systemHandler) Health(c *gin.Context) {
	status, database, message := "healthy", "connected", "Hospital billing service is running"
	if !h.status.Healthy(c.Request.Context()) {
		status, database, message = "unhealthy", "disconnected", "Database is not reachable"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
		"message":   message,
	})
}

// Status handles GET /api/status.
func (h *systemHandler) Status(c *gin.Context) {
	info := h.status.Connection(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"server":  "online",
		"version": h.version,
		"database": databaseStatus{
			Connected:    info.Connected,
			DatabaseType: info.DatabaseType,
			Fallback:     info.Fallback,
			Host:         info.Host,
			Database:     info.Database,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Statistics handles GET /api/statistics.
func (h *systemHandler) Statistics(c *gin.Context) {
	stats, err := h.stats.Compute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"statistics": statisticsResponse{
			ItemsByCategory: stats.ItemsByCategory,
			TotalItems:      stats.TotalItems,
			TotalBills:      stats.TotalBills,
			TotalRevenue:    stats.TotalRevenue,
		},
	})
}

// notFound answers unmatched routes. Unknown API paths also list the
// endpoints that do exist.
func notFound(c *gin.Context) {
	path := c.Request.URL.Path
	body := gin.H{
		"success": false,
		"error":   CodeNotFound,
		"message": "endpoint not found",
	}
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		body["message"] = "API endpoint not implemented"
		body["endpoint"] = path
		body["available_endpoints"] = availableEndpoints
	}
	c.JSON(http.StatusNotFound, body)
}
