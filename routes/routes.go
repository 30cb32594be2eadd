package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"villa-backend/controllers"
	"villa-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AuthController,
	uc *controllers.UserController,
	vc *controllers.VillaController,
	bc *controllers.BookingController,
	rc *controllers.ReportController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// the gate runs before every handler below
	r.Use(middleware.RequestGate())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// dashboard home, also the landing spot for role-denied report access
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// financial report page (admin/owner only, enforced by the gate)
	r.GET("/report", rc.ReportPage)

	api := r.Group("/api")
	{
		api.POST("/login", ac.Login)
		api.POST("/logout", ac.Logout)

		users := api.Group("/users")
		{
			users.GET("", uc.GetUsers)
			users.POST("", uc.CreateUser)
			users.GET("/:id", uc.GetUserByID)
			users.PUT("/:id", uc.UpdateUser)
			users.PATCH("/:id", uc.ChangePassword)
			users.DELETE("/:id", uc.DeleteUser)
		}

		villas := api.Group("/villas")
		{
			villas.GET("", vc.GetVillas)
			villas.POST("", vc.CreateVilla)
			villas.GET("/:id", vc.GetVillaByID)
			villas.PUT("/:id", vc.UpdateVilla)
			villas.PATCH("/:id", vc.PatchVillaStatus)
			villas.DELETE("/:id", vc.DeleteVilla)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingByID)
			bookings.PATCH("/:id", bc.PatchBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/financial", rc.GetFinancialReport)
			reports.GET("/financial/export", rc.ExportFinancialReport)
			reports.GET("/villas", rc.GetVillaSummaries)
			reports.PATCH("/entries/:orderId", rc.PatchEntry)
			reports.DELETE("/entries/:orderId", rc.DeleteEntry)
		}
	}

	return r
}
