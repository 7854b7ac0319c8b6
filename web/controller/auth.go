package controller

import (
	"errors"
	"net/http"

	"github.com/MarcosLesca/dashboard-api/logger"
	"github.com/MarcosLesca/dashboard-api/web/entity"
	"github.com/MarcosLesca/dashboard-api/web/service"
	"github.com/MarcosLesca/dashboard-api/web/session"

	"github.com/gin-gonic/gin"
)

// RegisterForm is the self-service registration payload.
type RegisterForm struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginForm is the login payload; email is the authentication key.
type LoginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileForm is a partial update of the caller's own account.
type ProfileForm struct {
	Username  *string `json:"username"`
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
}

// AuthController handles registration, login, logout and the profile routes.
type AuthController struct {
	BaseController

	sessionMaxAge int // minutes
}

// NewAuthController creates an AuthController and initializes its routes.
func NewAuthController(g *gin.RouterGroup, sessionMaxAge int) *AuthController {
	a := &AuthController{sessionMaxAge: sessionMaxAge}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/register", a.register)
	g.POST("/login", a.login)
	g.POST("/logout", a.checkLogin, a.logout)

	g.GET("/profile", a.checkLogin, a.profile)
	g.PUT("/profile", a.checkLogin, a.updateProfile)
}

// register creates a new account and echoes its public fields.
func (a *AuthController) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindingErrors(c, form, err)
		return
	}

	user, err := a.userService.Register(form.Username, form.Email, form.FirstName, form.LastName, form.Password)
	if err != nil {
		jsonServiceError(c, err)
		return
	}

	logger.Infof("user %s registered", user.Username)
	c.JSON(http.StatusCreated, entity.AuthResult{
		User:    entity.NewUser(user),
		Message: "User created successfully",
	})
}

// login verifies the credentials and binds the session to the account.
// Unknown email and wrong password produce the same generic error; a
// disabled account is reported distinctly.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindingErrors(c, form, err)
		return
	}

	user, err := a.userService.CheckUser(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrAccountDisabled) {
			logger.Warningf("failed login for %q, IP: %s", form.Email, getRemoteIp(c))
			c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{err.Error()}})
			return
		}
		jsonServiceError(c, err)
		return
	}

	if err := session.SetMaxAge(c, a.sessionMaxAge*60); err != nil {
		logger.Warning("unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
		jsonDetail(c, http.StatusInternalServerError, "Internal server error.")
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	c.JSON(http.StatusOK, entity.AuthResult{
		User:    entity.NewUser(user),
		Message: "Login successful",
	})
}

// logout clears the caller's session.
func (a *AuthController) logout(c *gin.Context) {
	user := loginUser(c)
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	logger.Infof("%s logged out successfully", user.Username)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// profile returns the caller's public fields.
func (a *AuthController) profile(c *gin.Context) {
	c.JSON(http.StatusOK, entity.NewUser(loginUser(c)))
}

// updateProfile applies a partial update to the caller's account.
func (a *AuthController) updateProfile(c *gin.Context) {
	var form ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindingErrors(c, form, err)
		return
	}

	user, err := a.userService.UpdateProfile(loginUser(c).Id, service.ProfileUpdate{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password,
	})
	if err != nil {
		jsonServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.NewUser(user))
}
