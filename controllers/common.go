package controllers

import (
	"errors"
	"log"
	"net/http"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service sentinels onto the envelope. Anything
// unexpected collapses to a generic 500; the detail stays in the server log.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
