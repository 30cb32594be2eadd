package controllers

import (
	"errors"
	"net/http"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	UserSvc *services.UserService
}

func NewAuthController(svc *services.UserService) *AuthController {
	return &AuthController{UserSvc: svc}
}

// Login turns a username/password pair into a session cookie. Unknown user
// and wrong password answer identically; neither the hash nor the raw
// password ever appears in a response or log line.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := ac.UserSvc.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondServiceError(c, err)
		return
	}

	role := user.EffectiveRole()
	token, err := utils.IssueSessionToken(user.ID, user.Username, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.AttachSessionCookie(c, token)

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     role,
		"token":    token,
	})
}

// Logout destroys the session by expiring the cookie. The token itself is
// stateless, so nothing server-side needs cleaning up.
func (ac *AuthController) Logout(c *gin.Context) {
	utils.ClearSessionCookie(c)
	utils.JSONMessage(c, http.StatusOK, "logged out")
}
