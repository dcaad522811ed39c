package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/admanager/admanager-backend/api/routes"
	"github.com/admanager/admanager-backend/internal/config"
	"github.com/admanager/admanager-backend/internal/handlers"
	mongorepo "github.com/admanager/admanager-backend/internal/repositories/mongodb"
	"github.com/admanager/admanager-backend/internal/services"
	"github.com/admanager/admanager-backend/pkg/gemini"
	"github.com/admanager/admanager-backend/pkg/mongodb"
	"github.com/admanager/admanager-backend/pkg/webscraper"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present, real environment wins
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Root context cancels the lifecycle sweeper on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Generative client
	generator, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	scraper := webscraper.NewScraper(generator, time.Duration(cfg.Scraper.TimeoutSeconds)*time.Second)

	// Repositories
	userRepo := mongorepo.NewUserRepository(db)
	customerRepo := mongorepo.NewCustomerRepository(db)
	campaignRepo := mongorepo.NewCampaignRepository(db)
	messageRepo := mongorepo.NewSavedMessageRepository(db)
	preferenceRepo := mongorepo.NewPreferenceRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	preferencesService := services.NewPreferencesService(preferenceRepo)
	smsService := services.NewSMSService(scraper, generator, preferencesService)
	customerService := services.NewCustomerService(customerRepo)
	campaignService := services.NewCampaignService(campaignRepo, messageRepo, preferencesService)
	lifecycleService := services.NewLifecycleService(campaignRepo)

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		SMSHandler:         handlers.NewSMSHandler(smsService),
		CampaignHandler:    handlers.NewCampaignHandler(campaignService),
		CustomerHandler:    handlers.NewCustomerHandler(customerService),
		PreferencesHandler: handlers.NewPreferencesHandler(preferencesService),
	}

	router := routes.SetupRouter(cfg, deps)

	// Start the lifecycle sweeper
	lifecycleService.Start(ctx, time.Duration(cfg.Lifecycle.SweepIntervalMinutes)*time.Minute)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
