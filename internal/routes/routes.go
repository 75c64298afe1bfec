package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medisphere-server/internal/config"
	"medisphere-server/internal/handlers"
	"medisphere-server/internal/middleware"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	medicationHandler := handlers.NewMedicationHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	cartHandler := handlers.NewCartHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Dashboard views derived from the medication list
		dashboardRoutes := private.Group("/dashboard")
		{
			dashboardRoutes.GET("/upcoming-doses", medicationHandler.GetUpcomingDoses)
			dashboardRoutes.GET("/adherence", medicationHandler.GetAdherence)
		}

		// Medication routes
		medicationRoutes := private.Group("/medications")
		{
			medicationRoutes.GET("", medicationHandler.GetMedications)
			medicationRoutes.POST("", medicationHandler.CreateMedication)
			medicationRoutes.PUT("/:id", medicationHandler.UpdateMedication)
			medicationRoutes.DELETE("/:id", medicationHandler.DeleteMedication)
			medicationRoutes.POST("/:id/doses", medicationHandler.TakeDose)
			medicationRoutes.POST("/:id/refill", medicationHandler.Refill)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		// Pharmacy cart routes
		cartRoutes := private.Group("/cart")
		{
			cartRoutes.GET("", cartHandler.GetCart)
			cartRoutes.POST("/items", cartHandler.AddItem)
			cartRoutes.DELETE("/items/:medicationId", cartHandler.RemoveItem)
			cartRoutes.DELETE("", cartHandler.ClearCart)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
