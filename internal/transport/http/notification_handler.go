package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eduflix-api/internal/application/usecase"
)

type NotificationHandler struct {
	notifications *usecase.NotificationUseCase
}

func NewNotificationHandler(notifications *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List отдаёт ленту и производный счётчик непрочитанных одним ответом.
func (h *NotificationHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	list, err := h.notifications.List(c, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	unread, err := h.notifications.UnreadCount(c, uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": list,
		"unreadCount":   unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c, uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.notifications.MarkAllRead(c, uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) Remove(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.Remove(c, uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) Clear(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.notifications.Clear(c, uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
