package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finflow/identity/internal/logger"
)

// Logging logs method, path, status and duration for each request.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle is the gin middleware function.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()

	c.Next()

	l.logger.Info("http request completed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration_ms", time.Since(start).Milliseconds())
}
