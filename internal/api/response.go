package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response codes carried in the envelope
const (
	CodeOK             = 0
	CodeInvalidRequest = 40001
	CodeMoveRejected   = 42201
	CodeInternal       = 50000
)

// Response is the JSON envelope of every API reply
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

func fail(c *gin.Context, httpStatus, code int, message, details string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func badRequest(c *gin.Context, details string) {
	fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request", details)
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, CodeInternal, "internal server error", "")
}
