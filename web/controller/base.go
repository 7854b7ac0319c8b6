// Package controller provides the HTTP request handlers of the dashboard
// API: authentication, profile management and the ownership-scoped
// dashboard/widget CRUD surface.
package controller

import (
	"net/http"

	"github.com/MarcosLesca/dashboard-api/database/model"
	"github.com/MarcosLesca/dashboard-api/web/service"
	"github.com/MarcosLesca/dashboard-api/web/session"

	"github.com/gin-gonic/gin"
)

const loginUserKey = "loginUser"

// BaseController provides the authentication check shared by all controllers.
type BaseController struct {
	userService service.UserService
}

// checkLogin resolves the session to a live account and aborts with 401 when
// the request carries no valid session. Deleted or deactivated accounts
// invalidate their sessions here.
func (a *BaseController) checkLogin(c *gin.Context) {
	userId := session.GetLoginUserId(c)
	if userId == 0 {
		jsonDetail(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		c.Abort()
		return
	}

	user, err := a.userService.GetUser(userId)
	if err != nil {
		_ = session.ClearSession(c)
		jsonDetail(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		c.Abort()
		return
	}

	c.Set(loginUserKey, user)
	c.Next()
}

// loginUser returns the account resolved by checkLogin.
func loginUser(c *gin.Context) *model.User {
	return c.MustGet(loginUserKey).(*model.User)
}
