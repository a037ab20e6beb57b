// Package api_router provides the HTTP API route handlers.
package api_router

import (
	"github.com/safedocs/doc-audit-service/internal/app"
)

// Handler is the base handler embedding the App container. All API
// handlers embed it for dependency injection.
type Handler struct {
	App *app.App
}

// NewHandler creates a base Handler instance.
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}
