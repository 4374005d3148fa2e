package emergency

import (
	"rescue-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, handler *RequestHandler, jwtSecret string) {
	requestGroup := r.Group("api/v1/requests", middleware.Secured(jwtSecret))
	{
		requestGroup.POST("", handler.CreateRequest)
		requestGroup.GET("/pending", handler.GetPendingRequests)
		requestGroup.GET("/mine", handler.GetMyRequests)
		requestGroup.GET("/assigned", handler.GetAssignedRequests)
		requestGroup.GET("/:id", handler.GetRequest)
		requestGroup.POST("/:id/accept", handler.AcceptRequest)
		requestGroup.POST("/:id/complete", handler.CompleteRequest)
	}
}
