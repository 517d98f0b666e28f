package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler maps errors attached to the gin context to a JSON response
// with an appropriate status code.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		statusCode := http.StatusInternalServerError
		switch err.(type) {
		case *ValidationError:
			statusCode = http.StatusBadRequest
		case *AuthError:
			statusCode = http.StatusUnauthorized
		case *NotFoundError:
			statusCode = http.StatusNotFound
		case *RateLimitError:
			statusCode = http.StatusTooManyRequests
		}

		c.JSON(statusCode, ErrorResponse{Error: err.Error()})
	}
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return e.Message
}
