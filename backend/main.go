package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/session"

	"studyquest/backend/config"
	"studyquest/backend/mailer"
	"studyquest/backend/middleware"
	"studyquest/backend/routes"
	"studyquest/backend/storage"
	"studyquest/backend/studyplan"
	"studyquest/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize the file store and seed the default subjects
	store := storage.NewStore(cfg.SubjectsFile, cfg.DetailsDir, cfg.ProgressDir)
	if err := store.EnsureFileStructure(); err != nil {
		log.Fatalf("Error preparing data files: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Email is optional: a broken configuration is reported, not fatal
	m := mailer.NewMailer(cfg)
	if ok, status := m.ValidateConfig(); !ok {
		logger.Printf("email disabled: %s", status)
	}

	service := studyplan.NewService(store, m)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	sessions := session.New()
	routes.SetupRoutes(app, service, m, cfg, sessions)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
