package handlers

import (
	"net/http"

	"servicelink/middleware"
	"servicelink/services/notification"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

func (h *NotificationHandler) ListHandler(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context(), middleware.CurrentAccount(c).ID())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	if err := h.Service.MarkRead(c.Request.Context(), middleware.CurrentAccount(c).ID(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
