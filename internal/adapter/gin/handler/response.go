package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform wrapper for every /api/* JSON response. Exactly the
// three keys, with data and error mutually exclusive: one is null whenever the
// other is set.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

// respondJSON writes an indented JSON body with the CORS header every JSON
// payload carries. The HTML welcome page does not go through here.
func respondJSON(c *gin.Context, status int, body any) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.IndentedJSON(status, body)
}

// respondData wraps data in a success envelope.
func respondData(c *gin.Context, status int, data any) {
	respondJSON(c, status, Envelope{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

// respondError wraps a failure message in an error envelope. The status is the
// caller's choice: business failures ride on 200, client errors on 4xx.
func respondError(c *gin.Context, status int, message string) {
	respondJSON(c, status, Envelope{
		Success: false,
		Data:    nil,
		Error:   &message,
	})
}

// NotFound is the handler for any unmatched path/method combination.
func NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "Not found")
}
