package handlers

import (
	"net/http"

	"servicelink/middleware"
	"servicelink/models"
	"servicelink/services/location"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	Service *location.Service
}

func NewLocationHandler(svc *location.Service) *LocationHandler {
	return &LocationHandler{Service: svc}
}

func (h *LocationHandler) currentResponse(sessionID string) gin.H {
	coord, lastErr := h.Service.Current(sessionID)
	resp := gin.H{"location": coord}
	if lastErr != "" {
		resp["error"] = lastErr
	}
	return resp
}

func (h *LocationHandler) GetLocationHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.currentResponse(middleware.SessionID(c)))
}

// DetectLocationHandler makes one detection attempt from the client IP.
func (h *LocationHandler) DetectLocationHandler(c *gin.Context) {
	sid := middleware.SessionID(c)
	if _, err := h.Service.GetCurrentLocation(c.Request.Context(), sid, middleware.ClientIP(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.currentResponse(sid))
}

func (h *LocationHandler) SetLocationHandler(c *gin.Context) {
	var coord models.Coordinates
	if !bindJSON(c, &coord) {
		return
	}
	sid := middleware.SessionID(c)
	if err := h.Service.SetLocation(sid, coord); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.currentResponse(sid))
}
