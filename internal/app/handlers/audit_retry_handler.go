package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuditRetryService interface {
	RetryFailedEvents(ctx context.Context) (retried int, failed int, err error)
}

type AuditRetryHandler struct {
	service AuditRetryService
}

func NewAuditRetryHandler(service AuditRetryService) *AuditRetryHandler {
	return &AuditRetryHandler{service: service}
}

// RetryAuditEvents replays dead-lettered circulation events.
func (h *AuditRetryHandler) RetryAuditEvents(c *gin.Context) {
	retried, failed, err := h.service.RetryFailedEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"retried": retried, "failed": failed})
}
