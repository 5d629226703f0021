package handlers

import (
	"net/http"

	"servicelink/middleware"
	"servicelink/models"
	"servicelink/services/auth"
	"servicelink/services/location"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Service  auth.AuthService
	Location *location.Service
}

func NewAuthHandler(svc auth.AuthService, loc *location.Service) *AuthHandler {
	return &AuthHandler{Service: svc, Location: loc}
}

func (h *AuthHandler) StartSessionHandler(c *gin.Context) {
	sess, err := h.Service.StartSession(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Header(middleware.SessionHeader, sess.ID)
	c.JSON(http.StatusCreated, gin.H{"sessionId": sess.ID, "session": sess})
}

func (h *AuthHandler) SelectRoleHandler(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.Service.SelectRole(c.Request.Context(), middleware.SessionID(c), req.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var creds auth.Credentials
	if !bindJSON(c, &creds) {
		return
	}
	sess, err := h.Service.Login(c.Request.Context(), middleware.SessionID(c), creds)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "verification code sent", "session": sess})
}

func (h *AuthHandler) VerifyOTPHandler(c *gin.Context) {
	var req struct {
		OTP string `json:"otp"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Service.VerifyOTP(c.Request.Context(), middleware.SessionID(c), req.OTP)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":           res.Token,
		"session":         res.Session,
		"account":         res.Account,
		"profileComplete": res.Account.ProfileComplete(),
	})
}

func (h *AuthHandler) MeHandler(c *gin.Context) {
	state, err := h.Service.Current(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *AuthHandler) CompleteProfileHandler(c *gin.Context) {
	var update models.ProfileUpdate
	if !bindJSON(c, &update) {
		return
	}
	acct, err := h.Service.CompleteProfile(c.Request.Context(), middleware.SessionID(c), update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": acct, "profileComplete": acct.ProfileComplete()})
}

func (h *AuthHandler) AddAddressHandler(c *gin.Context) {
	var addr models.Address
	if !bindJSON(c, &addr) {
		return
	}
	acct, err := h.Service.AddAddress(c.Request.Context(), middleware.SessionID(c), addr)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, acct)
}

func (h *AuthHandler) RemoveAddressHandler(c *gin.Context) {
	acct, err := h.Service.RemoveAddress(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, acct)
}

func (h *AuthHandler) SetDefaultAddressHandler(c *gin.Context) {
	acct, err := h.Service.SetDefaultAddress(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, acct)
}

func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	sid := middleware.SessionID(c)
	if err := h.Service.Logout(c.Request.Context(), sid); err != nil {
		utils.RespondError(c, err)
		return
	}
	if h.Location != nil {
		h.Location.Forget(sid)
	}
	getLogger(c).Info("Session logged out", zap.String("sessionID", sid))
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
