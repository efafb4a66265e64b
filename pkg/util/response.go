package util

import (
	"github.com/gin-gonic/gin"

	"campwild-api-io/api/pkg/apperr"
)

type SuccessResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func HandleSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Status:  statusCode,
		Message: message,
		Data:    data,
	})
}

func HandleSuccessMeta(c *gin.Context, statusCode int, message string, data, meta interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Status:  statusCode,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

type ErrorResponse struct {
	Error string `json:"error,omitempty"`
}

// HandleError logs the cause and writes the classified status and a
// user-facing message. Unclassified errors become a generic 500.
func HandleError(c *gin.Context, err error) {
	LogError("%v", err)
	c.JSON(apperr.Status(err), ErrorResponse{Error: apperr.Message(err)})
}

// HandleErrorStatus writes an explicit status for handler-level failures
// that never reach the services (malformed ids, bad JSON).
func HandleErrorStatus(c *gin.Context, statusCode int, err error, message string) {
	LogError("%v", err)
	c.JSON(statusCode, ErrorResponse{Error: message})
}

type Pagination struct {
	Limit int   `json:"limit"`
	Skip  int   `json:"skip"`
	Count int64 `json:"count"`
}
