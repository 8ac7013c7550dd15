package handlers

import (
	"errors"
	"net/http"

	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/app/middleware"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/consts"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/services"
	"github.com/MuhamadAsim/admin-library-haven-sub000/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationHandler struct {
	repo services.NotificationRepo
}

func NewNotificationHandler(repo services.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

// ListNotifications returns the calling member's own notifications, newest
// first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	session := middleware.SessionFromContext(c.Request.Context())
	if session == nil {
		respondError(c, consts.ErrSessionInvalid)
		return
	}

	notifications, err := h.repo.NotificationsForMember(session.MemberId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead flips a notification to read. The member filter keeps one member
// from acknowledging another's notifications.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	session := middleware.SessionFromContext(c.Request.Context())
	if session == nil {
		respondError(c, consts.ErrSessionInvalid)
		return
	}

	notificationId, err := utils.ParseObjectID(c.Param("notificationId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.repo.MarkRead(c.Request.Context(), notificationId, session.MemberId); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondError(c, consts.ErrNotificationNotFound)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification read"})
}
