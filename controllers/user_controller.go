package controllers

import (
	"net/http"
	"strconv"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type createUserPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff owner user"`
}

type updateUserPayload struct {
	Username string `json:"username"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff owner user"`
}

type changePasswordPayload struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.UserSvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (uc *UserController) GetUserByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := uc.UserSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var payload createUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	user, err := uc.UserSvc.Create(payload.Username, payload.Password, payload.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var payload updateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	user, err := uc.UserSvc.Update(id, payload.Username, payload.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// ChangePassword handles PATCH /api/users/:id.
func (uc *UserController) ChangePassword(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var payload changePasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	if err := uc.UserSvc.ChangePassword(id, payload.OldPassword, payload.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "password updated")
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := uc.UserSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "user deleted")
}
