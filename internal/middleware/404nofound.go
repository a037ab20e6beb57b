package middleware

import (
	"github.com/safedocs/doc-audit-service/pkg/app"
	"github.com/safedocs/doc-audit-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound handles unmatched routes.
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
