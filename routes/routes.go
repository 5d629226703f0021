package routes

import (
	"net/http"
	"time"

	"servicelink/handlers"
	"servicelink/middleware"
	"servicelink/models"
	"servicelink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the session, OTP and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/session", hb.Auth.StartSessionHandler)

		session := api.Group("")
		session.Use(middleware.RequireSession())
		session.POST("/role", hb.Auth.SelectRoleHandler)
		session.POST("/login", hb.Auth.LoginHandler)
		session.POST("/verify-otp", hb.Auth.VerifyOTPHandler)
		session.GET("/me", hb.Auth.MeHandler)
		session.POST("/logout", hb.Auth.LogoutHandler)

		// Profile endpoints require an authenticated account.
		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		protected.PUT("/profile", hb.Auth.CompleteProfileHandler)
		protected.POST("/addresses", middleware.RequireRole(models.RoleClient), hb.Auth.AddAddressHandler)
		protected.DELETE("/addresses/:id", middleware.RequireRole(models.RoleClient), hb.Auth.RemoveAddressHandler)
		protected.PUT("/addresses/:id/default", middleware.RequireRole(models.RoleClient), hb.Auth.SetDefaultAddressHandler)
	}
}

// RegisterLocationRoutes registers per-session location endpoints.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/location")
	{
		api.Use(middleware.RequireSession())
		api.GET("", hb.Location.GetLocationHandler)
		api.POST("/detect", hb.Location.DetectLocationHandler)
		api.PUT("", hb.Location.SetLocationHandler)
	}
}

// RegisterWorkerRoutes registers the public worker directory.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/workers")
	{
		api.GET("", hb.Workers.ListWorkersHandler)
		api.GET("/search", hb.Workers.SearchWorkersHandler)
		api.GET("/:id", hb.Workers.GetWorkerHandler)
	}
}

// RegisterBookingRoutes sets up the draft workflow and the booking collection.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	draft := r.Group("/api/booking/draft")
	{
		draft.Use(middleware.RequireRole(models.RoleClient), middleware.RequireCompleteProfile())
		draft.POST("", hb.Booking.InitiateHandler)
		draft.GET("", hb.Booking.GetDraftHandler)
		draft.PUT("/schedule", hb.Booking.ScheduleHandler)
		draft.PUT("/location", hb.Booking.LocationHandler)
		draft.PUT("/notes", hb.Booking.NotesHandler)
		draft.DELETE("", hb.Booking.AbandonHandler)
		draft.POST("/finalize", hb.Booking.FinalizeHandler)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.RequireAuth())
		bookings.GET("", hb.Booking.ListBookingsHandler)
		bookings.GET("/:id", hb.Booking.GetBookingHandler)
		bookings.PATCH("/:id/status", hb.Booking.UpdateStatusHandler)
		bookings.POST("/:id/review", middleware.RequireRole(models.RoleClient), hb.Booking.ReviewHandler)
		bookings.POST("/:id/payment", middleware.RequireRole(models.RoleClient), hb.Booking.PaymentHandler)
	}
}

// RegisterNotificationRoutes registers the in-app inbox.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.RequireAuth())
		api.GET("", hb.Notification.ListHandler)
		api.PUT("/:id/read", hb.Notification.MarkReadHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for the verification authority.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminKeyMiddleware(hb.AdminKey))
		adminGroup.PUT("/workers/:id/verify", hb.Admin.VerifyWorkerHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm servicelink", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.SessionHeader, middleware.AdminKeyHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SessionMiddleware(hb.AuthService))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterLocationRoutes(r, hb)
	RegisterWorkerRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
