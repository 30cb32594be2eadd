package utils

import "github.com/gin-gonic/gin"

// APIResponse is the envelope every API endpoint answers with. The
// statusCode field mirrors the HTTP status so clients that swallow the
// transport status can still branch on it.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

func JSONSuccess(c *gin.Context, code int, data any) {
	c.JSON(code, APIResponse{StatusCode: code, Data: data})
}

func JSONMessage(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{StatusCode: code, Message: message})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{StatusCode: code, Error: message})
}
