package api_router

import (
	"time"

	"github.com/safedocs/doc-audit-service/internal/app"
	pkgapp "github.com/safedocs/doc-audit-service/pkg/app"
	"github.com/safedocs/doc-audit-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the service health check.
type HealthHandler struct {
	*Handler
}

// NewHealthHandler creates a HealthHandler instance.
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status   string  `json:"status"`   // "healthy" or "unhealthy"
	Version  string  `json:"version"`  // service version
	Uptime   float64 `json:"uptime"`   // seconds since start
	Database string  `json:"database"` // "connected" or "error"
}

// Check reports service health including database connectivity.
// @Summary Health check
// @Description Checks service health, including the database connection
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Uptime:   time.Since(h.App.StartTime).Seconds(),
		Database: "connected",
	}

	if err := h.App.DB.Raw("SELECT 1").Error; err != nil {
		response.Status = "unhealthy"
		response.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.ErrorServerInternal.WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}
