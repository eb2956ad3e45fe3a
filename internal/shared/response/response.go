package response

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Development toggles the stack field on error responses.
// Set once at startup from the app environment.
var Development bool

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

// Success writes a success envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithCount writes a success envelope for list endpoints.
func SuccessWithCount(c *gin.Context, statusCode int, data interface{}, count int) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

// SuccessWithMessage writes a success envelope carrying a human message,
// used by the delete endpoints.
func SuccessWithMessage(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error writes a failure envelope. In development the current stack is
// attached so the caller can locate the failing handler.
func Error(c *gin.Context, statusCode int, message string) {
	resp := Response{
		Success: false,
		Error:   message,
	}
	if Development {
		resp.Stack = string(debug.Stack())
	}
	c.JSON(statusCode, resp)
}
