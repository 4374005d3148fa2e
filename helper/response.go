package helper

import "github.com/gin-gonic/gin"

// Error kinds surfaced in the response envelope so clients can branch
// without parsing the message text.
const (
	ErrInvalidRequest   = "INVALID_REQUEST"
	ErrInvalidOperation = "INVALID_OPERATION"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
)

type Response struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func SendSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func SendError(c *gin.Context, status int, err error, kind string) {
	c.JSON(status, ErrorResponse{
		StatusCode: status,
		Error:      kind,
		Message:    err.Error(),
	})
}
