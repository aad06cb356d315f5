// Package respond writes the {success, data|error} envelopes shared by every
// endpoint.
package respond

import "github.com/gin-gonic/gin"

// DataResponse is the success envelope.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// JSON writes payload as-is. Health check and 404 bodies use it because they carry
// their own shape.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Data wraps payload in the success envelope.
func Data(c *gin.Context, status int, payload any) {
	c.JSON(status, DataResponse{Success: true, Data: payload})
}
