package emergency

import (
	"errors"
	"net/http"

	"rescue-service/helper"
	"rescue-service/pkg/constants"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService RequestService
}

func NewRequestHandler(requestService RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		ID:   c.GetString(constants.UserID),
		Name: c.GetString(constants.UserName),
		Role: c.GetString(constants.UserRole),
	}
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {

	var req CreateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	request, err := h.requestService.Create(c, actorFrom(c), &req)
	if err != nil {
		if errors.Is(err, ErrTypeRequired) || errors.Is(err, ErrLocationRequired) {
			helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
			return
		}
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, "success", request)
}

func (h *RequestHandler) AcceptRequest(c *gin.Context) {

	request, err := h.requestService.Accept(c, actorFrom(c), c.Param("id"))
	if err != nil {
		h.sendTransitionError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, "success", request)
}

func (h *RequestHandler) CompleteRequest(c *gin.Context) {

	request, err := h.requestService.Complete(c, actorFrom(c), c.Param("id"))
	if err != nil {
		h.sendTransitionError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, "success", request)
}

func (h *RequestHandler) sendTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		helper.SendError(c, http.StatusNotFound, err, helper.ErrNotFound)
	case errors.Is(err, ErrAlreadyAccepted), errors.Is(err, ErrNotAccepted):
		helper.SendError(c, http.StatusConflict, err, helper.ErrConflict)
	case errors.Is(err, ErrResponderRole):
		helper.SendError(c, http.StatusForbidden, err, helper.ErrInvalidOperation)
	default:
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
	}
}

func (h *RequestHandler) GetRequest(c *gin.Context) {

	request, err := h.requestService.GetByID(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			helper.SendError(c, http.StatusNotFound, err, helper.ErrNotFound)
			return
		}
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusOK, "success", request)
}

// GetPendingRequests feeds the responder dashboard's open-requests tab.
func (h *RequestHandler) GetPendingRequests(c *gin.Context) {

	requests, err := h.requestService.ByStatus(c, StatusPending)
	if err != nil {
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusOK, "success", requests)
}

// GetMyRequests lists everything the signed-in user has submitted.
func (h *RequestHandler) GetMyRequests(c *gin.Context) {

	requests, err := h.requestService.ByRequester(c, c.GetString(constants.UserID))
	if err != nil {
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusOK, "success", requests)
}

// GetAssignedRequests lists requests the signed-in responder has
// accepted. With ?active=true, completed requests are filtered out.
func (h *RequestHandler) GetAssignedRequests(c *gin.Context) {

	responderID := c.GetString(constants.UserID)

	var (
		requests []*Request
		err      error
	)

	if c.Query("active") == "true" {
		requests, err = h.requestService.ActiveByResponder(c, responderID)
	} else {
		requests, err = h.requestService.ByResponder(c, responderID)
	}

	if err != nil {
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusOK, "success", requests)
}
