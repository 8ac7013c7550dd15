package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var sensitiveHeaders = []string{"Authorization", "Cookie", "X-Api-Key"}

// AttachRequestDetails seeds every request context with a request id and the
// correlation fields the logger emits.
func AttachRequestDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := time.Now().UTC()

		details := models.RequestDetails{
			RequestID:     uuid.New().String(),
			IP:            c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
			HTTPMethod:    c.Request.Method,
			Path:          c.Request.URL.String(),
			OperationName: extractFirstTwoSegments(c.HandlerName()),
			RequestTime:   requestTime.Format(time.RFC3339Nano),
			RequestParams: map[string]interface{}{
				"headers": extractHeaders(c.Request.Header),
				"query":   c.Request.URL.Query(),
			},
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), models.LogDetailsKey, details))
		c.Next()
	}
}

func extractHeaders(headers map[string][]string) map[string]interface{} {
	result := make(map[string]interface{})
	for key, values := range headers {
		if len(values) == 0 {
			continue
		}
		if contains(sensitiveHeaders, key) {
			result[key] = "*****"
		} else {
			result[key] = values[0]
		}
	}
	return result
}

func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

func extractFirstTwoSegments(handlerName string) string {
	segments := strings.Split(handlerName, "/")
	if len(segments) > 2 {
		return strings.Join(segments[:2], "/")
	}
	return handlerName
}
