package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is where the request logger middleware stores the logger.
const LoggerKey = "logger"

// getLogger retrieves the Zap logger from the Gin context, or a no-op logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.NewNop()
}
