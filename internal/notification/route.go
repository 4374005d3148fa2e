package notification

import (
	"rescue-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, handler *NotificationHandler, jwtSecret string) {
	notificationGroup := r.Group("api/v1/notifications", middleware.Secured(jwtSecret))
	{
		notificationGroup.POST("/token", handler.RegisterToken)
	}
}
