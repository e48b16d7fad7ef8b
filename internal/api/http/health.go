package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Store is the view of the document store the health and diagnostics
// endpoints need.
type Store interface {
	Available() bool
	Name() string
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	store       Store
}

func NewHealthHandler(serviceName, version string, store Store) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		store:       store,
	}
}

// Root answers the liveness message on GET /.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio API running"})
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.store != nil && h.store.Available() {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.store.Ping(pingCtx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
