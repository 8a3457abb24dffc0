package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asokatrip/middleware"
	"asokatrip/utils"
)

// getLogger returns the process logger annotated with the request route and, on admin routes, the
// signed-in admin.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger().With(zap.String("method", c.Request.Method), zap.String("path", c.FullPath()))
	if admin, ok := middleware.CurrentAdmin(c); ok {
		logger = logger.With(zap.String("adminUid", admin.UID))
	}
	return logger
}
