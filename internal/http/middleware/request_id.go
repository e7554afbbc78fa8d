package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tinkerly.io/api/common/logger"
)

const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID reuses an incoming X-Request-ID or mints a UUID, echoes it on the
// response and attaches it to the request's log fields.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Header(RequestIDHeader, requestID)
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			RequestID: &requestID,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
