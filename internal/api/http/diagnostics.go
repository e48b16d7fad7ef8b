package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/portfolio-api/internal/api/http/middleware"
	"github.com/gin-gonic/gin"
)

const (
	statusRunning        = "✅ Running"
	statusNotAvailable   = "❌ Not Available"
	statusAvailable      = "✅ Available"
	statusWorking        = "✅ Connected & Working"
	statusSet            = "✅ Set"
	statusNotSet         = "❌ Not Set"
	connectionConnected  = "Connected"
	connectionNotPresent = "Not Connected"

	maxCollections = 10
	maxErrorLen    = 50
)

// DiagnosticsResponse is the body of GET /test.
type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	DatabaseHandle   string   `json:"database_handle,omitempty"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// EnvStatus reports which store settings were present at startup.
type EnvStatus struct {
	DatabaseURLSet  bool
	DatabaseNameSet bool
}

// DiagnosticsHandler serves GET /test. It always answers 200; check
// failures are reported inside the body.
type DiagnosticsHandler struct {
	store   Store
	env     EnvStatus
	timeout time.Duration
}

func NewDiagnosticsHandler(store Store, env EnvStatus) *DiagnosticsHandler {
	return &DiagnosticsHandler{store: store, env: env, timeout: 5 * time.Second}
}

func (h *DiagnosticsHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/test", h.Diagnose)
}

func (h *DiagnosticsHandler) Diagnose(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := h.report(ctx)
	if resp.Database != statusWorking {
		middleware.Logger(c).WithField("database", resp.Database).Warn("diagnostics: store not working")
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DiagnosticsHandler) report(ctx context.Context) DiagnosticsResponse {
	resp := DiagnosticsResponse{
		Backend:          statusRunning,
		Database:         statusNotAvailable,
		ConnectionStatus: connectionNotPresent,
		Collections:      []string{},
	}

	if err := safeCheck(func() error {
		if h.store == nil || !h.store.Available() {
			return nil
		}
		resp.Database = statusAvailable
		resp.ConnectionStatus = connectionConnected

		if err := safeCheck(func() error {
			resp.DatabaseHandle = h.store.Name()
			return nil
		}); err != nil {
			resp.DatabaseHandle = "⚠️  " + truncate(err.Error())
		}

		if err := safeCheck(func() error {
			names, err := h.store.CollectionNames(ctx)
			if err != nil {
				return err
			}
			if len(names) > maxCollections {
				names = names[:maxCollections]
			}
			resp.Collections = names
			resp.Database = statusWorking
			return nil
		}); err != nil {
			resp.Database = "⚠️  Connected but Error: " + truncate(err.Error())
		}
		return nil
	}); err != nil {
		resp.Database = "❌ Error: " + truncate(err.Error())
	}

	resp.DatabaseURL = setStatus(h.env.DatabaseURLSet)
	resp.DatabaseName = setStatus(h.env.DatabaseNameSet)
	return resp
}

// safeCheck runs fn and turns a panic into an error so one failing check cannot
// take down the request.
func safeCheck(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}

func setStatus(set bool) string {
	if set {
		return statusSet
	}
	return statusNotSet
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxErrorLen {
		return string(r[:maxErrorLen])
	}
	return s
}
