package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lcoutinho/valor-explorer/internal/catalog"
)

type HealthHandler struct {
	store *catalog.Store
}

func NewHealthHandler(store *catalog.Store) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

// GetHealth returns basic health status - always returns 200 if server is running
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "valor-explorer",
	})
}

// GetReady reports whether the catalog has been loaded. The server serves
// empty listings before the first successful load, so this is informational
// for orchestration rather than a hard gate.
func (h *HealthHandler) GetReady(c *gin.Context) {
	size := h.store.Len()
	status := http.StatusOK
	state := "ready"
	if size == 0 {
		status = http.StatusServiceUnavailable
		state = "catalog_empty"
	}

	c.JSON(status, gin.H{
		"status":    state,
		"players":   size,
		"loaded_at": h.store.LoadedAt(),
	})
}
