package middleware

import (
	"strings"

	"servicelink/models"
	"servicelink/services/auth"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the session id before the visitor holds a token.
const SessionHeader = "X-Session-ID"

const (
	ctxSessionID = "sessionID"
	ctxAccount   = "account"
)

func abortWithError(c *gin.Context, err error) {
	utils.RespondError(c, err)
	c.Abort()
}

// SessionMiddleware resolves the caller's session. A bearer token must be valid; without
// one the X-Session-ID header is trusted as an unauthenticated session id.
func SessionMiddleware(authSvc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			sess, acct, err := authSvc.Authenticate(c.Request.Context(), token)
			if err != nil {
				abortWithError(c, err)
				return
			}
			c.Set(ctxSessionID, sess.ID)
			c.Set(ctxAccount, acct)
			c.Next()
			return
		}
		if sid := strings.TrimSpace(c.GetHeader(SessionHeader)); sid != "" {
			c.Set(ctxSessionID, sid)
		}
		c.Next()
	}
}

// RequireSession rejects requests that carry no session id at all.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionID(c) == "" {
			abortWithError(c, utils.NewAuthError("missing session; start one at /api/auth/session"))
			return
		}
		c.Next()
	}
}

// RequireAuth rejects requests without an authenticated account.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentAccount(c) == nil {
			abortWithError(c, utils.NewAuthError("Insufficient authorization"))
			return
		}
		c.Next()
	}
}

// SessionID returns the resolved session id, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

// CurrentAccount returns the authenticated account, or nil.
func CurrentAccount(c *gin.Context) *models.Account {
	v, ok := c.Get(ctxAccount)
	if !ok {
		return nil
	}
	acct, _ := v.(*models.Account)
	return acct
}
