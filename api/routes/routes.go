package routes

import (
	"github.com/admanager/admanager-backend/internal/config"
	"github.com/admanager/admanager-backend/internal/handlers"
	"github.com/admanager/admanager-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies bundles the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	SMSHandler         *handlers.SMSHandler
	CampaignHandler    *handlers.CampaignHandler
	CustomerHandler    *handlers.CustomerHandler
	PreferencesHandler *handlers.PreferencesHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Draft generation routes
		sms := protected.Group("/sms")
		{
			sms.POST("/generate", deps.SMSHandler.GenerateSMS)
			sms.POST("/refine", deps.SMSHandler.RefineSMS)
			sms.POST("/recommend-tones", deps.SMSHandler.RecommendTones)
		}

		// Customer routes
		customers := protected.Group("/customers")
		{
			customers.GET("", deps.CustomerHandler.GetCustomers)
			customers.GET("/:id", deps.CustomerHandler.GetCustomer)
			customers.POST("", deps.CustomerHandler.CreateCustomer)
			customers.PUT("/:id", deps.CustomerHandler.UpdateCustomer)
			customers.DELETE("/:id", deps.CustomerHandler.DeleteCustomer)
		}

		// Campaign routes
		campaigns := protected.Group("/campaigns")
		{
			campaigns.GET("", deps.CampaignHandler.GetCampaigns)
			campaigns.GET("/:id", deps.CampaignHandler.GetCampaign)
			campaigns.POST("", deps.CampaignHandler.CreateCampaign)
			campaigns.PUT("/:id", deps.CampaignHandler.UpdateCampaign)
			campaigns.DELETE("/:id", deps.CampaignHandler.DeleteCampaign)

			campaigns.GET("/:id/messages", deps.CampaignHandler.GetMessages)
			campaigns.POST("/:id/messages", deps.CampaignHandler.SaveMessage)
			campaigns.DELETE("/:id/messages/:messageId", deps.CampaignHandler.DeleteMessage)
		}

		// Preference routes
		protected.GET("/preferences", deps.PreferencesHandler.GetPreferences)
	}

	return router
}
