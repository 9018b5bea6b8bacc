package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kettleops/bulkrest/internal/utils"
	"go.uber.org/zap"
)

func authMiddleware(expectedToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		expectedAuth := fmt.Sprintf("Bearer %s", expectedToken)
		if authHeader != expectedAuth {
			utils.Logger.Warn("Unauthorized access attempt",
				zap.String(utils.FieldPath, c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": MessageInvalidToken})
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestIDMiddleware assigns each request a correlation id, echoed in
// the response headers and attached to webhook summaries.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
