package user

import (
	"errors"
	"net/http"

	"rescue-service/helper"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) SignUp(c *gin.Context) {

	var req SignUpRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	resp, err := h.userService.SignUp(c, &req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			helper.SendError(c, http.StatusConflict, err, helper.ErrConflict)
			return
		}
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, "success", resp)
}

func (h *UserHandler) SignIn(c *gin.Context) {

	var req SignInRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	resp, err := h.userService.SignIn(c, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			helper.SendError(c, http.StatusNotFound, err, helper.ErrNotFound)
			return
		}
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	helper.SendSuccess(c, http.StatusOK, "success", resp)
}
