package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"villa-backend/models"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

// Paths reachable without a session. Everything else, API and page alike,
// goes through credential validation.
var publicPaths = []string{
	"/login",
	"/register",
	"/api/login",
	"/api/logout",
	"/api/auth",
	"/health",
}

// Static assets are always passed through unchecked.
var staticPrefixes = []string{
	"/uploads",
	"/static",
	"/favicon.ico",
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	for _, p := range staticPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// The financial report is the single route group with a role restriction
// on top of "any authenticated role".
func isReportPath(path string) bool {
	return path == "/report" || strings.HasPrefix(path, "/report/") ||
		path == "/api/reports" || strings.HasPrefix(path, "/api/reports/")
}

func canViewReports(role string) bool {
	return role == models.RoleAdmin || role == models.RoleOwner
}

// rejectUnauthenticated ends the request the way the client expects:
// API callers get a 401 envelope, page navigations get bounced to the
// login page with the original destination as callbackUrl.
func rejectUnauthenticated(c *gin.Context) {
	path := c.Request.URL.Path
	if isAPIPath(path) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse{
			StatusCode: http.StatusUnauthorized,
			Error:      "Unauthorized",
			Message:    "Authentication required",
		})
		return
	}
	c.Redirect(http.StatusFound, "/login?callbackUrl="+url.QueryEscape(path))
	c.Abort()
}

// RequestGate runs before every route handler. It classifies the path,
// validates the session credential, puts the caller identity on the request
// context, and enforces the report role carve-out. It never writes to the
// store and keeps no state across requests.
func RequestGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isPublicPath(path) {
			c.Next()
			return
		}

		raw := utils.ExtractSessionToken(c)
		if raw == "" {
			rejectUnauthenticated(c)
			return
		}

		claims, err := utils.ParseSessionToken(raw)
		if err != nil {
			// Malformed or expired tokens degrade to the unauthenticated
			// path; the gate never takes down the request pipeline.
			log.Printf("request gate: rejected token for %s: %v", path, err)
			rejectUnauthenticated(c)
			return
		}

		identity := utils.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		}
		utils.SetIdentity(c, identity)

		if isReportPath(path) && !canViewReports(identity.Role) {
			if isAPIPath(path) {
				c.AbortWithStatusJSON(http.StatusForbidden, utils.APIResponse{
					StatusCode: http.StatusForbidden,
					Error:      "Forbidden",
					Message:    "Report access requires admin or owner role",
				})
				return
			}
			// Page navigation: send the user home instead of showing a 403.
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}
