package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 success envelope around data.
func OK(c *gin.Context, data any) {
	JSON(c, http.StatusOK, Envelope{Success: true, Data: data})
}

// Message writes a success envelope carrying a message and optional data.
func Message(c *gin.Context, status int, message string, data any) {
	JSON(c, status, Envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 success envelope with a count of items.
func List(c *gin.Context, data any, count int) {
	JSON(c, http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}
