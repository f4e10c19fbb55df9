// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API speaks two body shapes: flat success objects assembled by the
// handlers, and a single error shape {"detail": <message>} for every
// failure class. Callers cannot distinguish error subtypes beyond the
// status code.

type ErrorBody struct {
	Detail string `json:"detail"`
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Detail: message})
}

func BadRequestResponse(c *gin.Context, message string) {
	if message == "" {
		message = "invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, message)
}

// UnauthorizedResponse deliberately carries one fixed message so that
// "unknown username" and "wrong password" are observably identical.
func UnauthorizedResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusUnauthorized, "invalid username or password")
}

func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, message)
}
