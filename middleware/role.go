package middleware

import (
	"servicelink/models"
	"servicelink/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only authenticated accounts of the given role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := CurrentAccount(c)
		if acct == nil {
			abortWithError(c, utils.NewAuthError("Insufficient authorization"))
			return
		}
		if acct.Role() != role {
			abortWithError(c, &utils.PermissionError{Msg: "this action is only available to " + string(role) + "s"})
			return
		}
		c.Next()
	}
}

// RequireCompleteProfile sends accounts without a finished profile back to setup.
func RequireCompleteProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := CurrentAccount(c)
		if acct == nil {
			abortWithError(c, utils.NewAuthError("Insufficient authorization"))
			return
		}
		if !acct.ProfileComplete() {
			abortWithError(c, utils.NewStateError("complete your profile at /%s/setup-profile first", acct.Role()))
			return
		}
		c.Next()
	}
}
