// Package routers assembles the gin engines for the public API and the
// private debug listener.
package routers

import (
	"time"

	"github.com/safedocs/doc-audit-service/internal/app"
	"github.com/safedocs/doc-audit-service/internal/middleware"
	"github.com/safedocs/doc-audit-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// NewRouter creates the public API router with the full middleware
// chain and the audit routes.
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger(), appContainer.IsProductionMode()))

		auditHandler := api_router.NewAuditHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.POST("/audit", auditHandler.Analyze)
		api.POST("/audit/re", auditHandler.ReAudit)
		api.GET("/audit/history", auditHandler.History)

		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
