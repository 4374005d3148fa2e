package notification

import (
	"net/http"

	"rescue-service/helper"
	"rescue-service/pkg/constants"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService NotificationService
}

func NewNotificationHandler(notificationService NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// RegisterToken stores the caller's FCM device token so lifecycle
// transitions can reach their device.
func (h *NotificationHandler) RegisterToken(c *gin.Context) {

	var req RegisterTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	userID := c.GetString(constants.UserID)
	userRole := c.GetString(constants.UserRole)

	if err := h.notificationService.RegisterToken(c, userID, userRole, req.Token); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	helper.SendSuccess(c, http.StatusOK, "success", nil)
}
