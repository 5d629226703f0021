package handlers

import (
	"net/http"

	"servicelink/services/auth"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the verification authority's operations.
type AdminHandler struct {
	AuthService auth.AuthService
}

func NewAdminHandler(as auth.AuthService) *AdminHandler {
	return &AdminHandler{AuthService: as}
}

// VerifyWorkerHandler sets or clears a worker's verified badge.
func (ah *AdminHandler) VerifyWorkerHandler(c *gin.Context) {
	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	if err := ah.AuthService.VerifyWorker(c.Request.Context(), id, *req.Verified); err != nil {
		zap.L().Warn("Failed to update worker verification", zap.String("workerID", id), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerId": id, "verified": *req.Verified})
}
