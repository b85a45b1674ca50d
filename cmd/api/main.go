package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/handlers"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// History is optional; without it nothing touches the database.
	var analysisRepo repositories.AnalysisRepository
	if cfg.History.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		analysisRepo = repositories.NewAnalysisRepository(db)
		log.Println("✅ Analysis history enabled")
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor(services.NewPDFParserService())
	log.Println("✅ Services initialized successfully")

	ctx := context.Background()

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	requester := services.NewAnalysisRequester(geminiService, cfg.Analysis.RetryMaxAttempts)
	log.Printf("✅ Gemini AI initialized successfully (model: %s)\n", cfg.Gemini.Model)

	// Start worker
	worker := services.NewWorker(cfg.Analysis.QueueSize)
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	analyzer := services.NewAnalyzerService(
		storageService,
		extractor,
		requester,
		worker,
		analysisRepo,
		cfg.Analysis.Timeout,
	)

	// Initialize Handlers
	pageHandler := handlers.NewPageHandler(analyzer, cfg.Storage.MaxFileSize)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, cfg.Storage.MaxFileSize)
	resultHandler := handlers.NewResultHandler(analysisRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ResumeRanker ATS API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Analysis.Timeout + 30*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Page
	app.Get("/", pageHandler.HandleIndex)
	app.Post("/", pageHandler.HandleSubmit)

	// Routes
	api := app.Group("/api/v1")

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ResumeRanker ATS API",
			"version": "1.0.0",
			"history": cfg.History.Enabled,
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/analyses",
				"GET /api/v1/analyses/:id",
				"GET /api/v1/health",
			},
		})
	})

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/analyses", resultHandler.HandleListAnalyses)
	api.Get("/analyses/:id", resultHandler.HandleGetAnalysis)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Open http://localhost%s in a browser\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
