package routes

import (
	"time"

	"clearheadspace/handlers"
	"clearheadspace/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full HTTP surface.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.Health)

	RegisterProviderRoutes(r)
	RegisterBookingRoutes(r)
	RegisterUserRoutes(r)
	RegisterAdminRoutes(r)
}

// RegisterProviderRoutes registers the public catalog endpoints.
func RegisterProviderRoutes(r *gin.Engine) {
	api := r.Group("/api/providers")
	{
		api.GET("", handlers.ListProviders)
		api.GET("/:id", handlers.GetProvider)
		api.GET("/:id/stats", handlers.GetProviderStats)
		api.GET("/:id/slots", handlers.GetProviderSlots)
		api.GET("/:id/next-available", handlers.GetNextAvailable)
		api.POST("/recommend", handlers.RecommendProviders)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints. All of
// them require a verified Firebase identity.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	api.Use(middleware.FirebaseAuthMiddleware())
	{
		api.POST("", handlers.CreateBooking)
		api.GET("", handlers.ListBookings)
		api.GET("/:id", handlers.GetBooking)
		api.GET("/:id/join", handlers.JoinBooking)
		api.POST("/:id/cancel", handlers.CancelBooking)
		api.POST("/:id/reschedule", handlers.RescheduleBooking)
		api.POST("/:id/complete", handlers.CompleteBooking)
	}

	payments := r.Group("/api/payments")
	payments.Use(middleware.FirebaseAuthMiddleware())
	{
		payments.POST("/intent", handlers.CreatePaymentIntent)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine) {
	api := r.Group("/api/users")
	api.Use(middleware.FirebaseAuthMiddleware())
	{
		api.POST("/profile", handlers.SaveProfile)
		api.GET("/profile", handlers.GetProfile)
		api.DELETE("", handlers.DeleteAccount)
	}
}

// RegisterAdminRoutes registers the catalog and reporting admin surface.
func RegisterAdminRoutes(r *gin.Engine) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthAdminMiddleware())
	{
		api.POST("/providers", handlers.AdminCreateProvider)
		api.PUT("/providers/:id", handlers.AdminUpdateProvider)
		api.PUT("/providers/:id/active", handlers.AdminSetProviderActive)
		api.PUT("/providers/:id/availability", handlers.AdminSetAvailability)
		api.GET("/bookings", handlers.AdminListBookings)
		api.GET("/reports", handlers.AdminReports)
		api.POST("/reports/generate", handlers.AdminGenerateReport)
	}
}
