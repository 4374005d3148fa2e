package user

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, handler *UserHandler) {
	authGroup := r.Group("api/v1/auth")
	{
		authGroup.POST("/signup", handler.SignUp)
		authGroup.POST("/signin", handler.SignIn)
	}
}
