package api_router

import (
	"github.com/safedocs/doc-audit-service/internal/app"
	"github.com/safedocs/doc-audit-service/internal/dto"
	pkgapp "github.com/safedocs/doc-audit-service/pkg/app"
	"github.com/safedocs/doc-audit-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionHandler serves build version information.
type VersionHandler struct {
	*Handler
}

// NewVersionHandler creates a VersionHandler instance.
func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{
		Handler: NewHandler(a),
	}
}

// ServerVersion returns the server version, git tag and build time.
// @Summary Get server version info
// @Description Get current server software version, Git tag, and build time
// @Tags System
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.VersionDTO} "Success"
// @Router /api/version [get]
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	versionInfo := h.App.Version()
	response.ToResponse(code.Success.WithData(dto.VersionDTO{
		Version:   versionInfo.Version,
		GitTag:    versionInfo.GitTag,
		BuildTime: versionInfo.BuildTime,
	}))
}
