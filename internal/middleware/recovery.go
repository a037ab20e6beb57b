package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/safedocs/doc-audit-service/pkg/app"
	"github.com/safedocs/doc-audit-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger recovers from handler panics and converts them
// into a unified error response. In production the panic detail is
// logged but kept out of the response body.
func RecoveryWithLogger(logger *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		defer func() {
			if err := recover(); err != nil {
				var errorMsg string
				switch e := err.(type) {
				case string:
					errorMsg = e
				case error:
					logger.Error("Recovered from panic",
						zap.Int("status", c.Writer.Status()),
						zap.String("router", path),
						zap.String("method", c.Request.Method),
						zap.String("query", query),
						zap.String("ip", c.ClientIP()),
						zap.String("user-agent", c.Request.UserAgent()),
						zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
						zap.Error(e),
						zap.String("stack", string(debug.Stack())),
					)
					errorMsg = e.Error()
				default:
					logger.Error("Recovered from unknown panic",
						zap.Int("status", c.Writer.Status()),
						zap.String("router", path),
						zap.String("method", c.Request.Method),
						zap.String("query", query),
						zap.String("ip", c.ClientIP()),
						zap.String("user-agent", c.Request.UserAgent()),
						zap.String("panic_value", fmt.Sprintf("%v", err)),
						zap.String("stack", string(debug.Stack())),
					)
					errorMsg = fmt.Sprintf("%v", err)
				}

				if production {
					app.NewResponse(c).ToResponse(code.ErrorServerInternal)
				} else {
					app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(errorMsg))
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
