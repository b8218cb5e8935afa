package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/jobha/backend/auth"
	"github.com/jobha/backend/config"
	_ "github.com/jobha/backend/docs"
	"github.com/jobha/backend/handlers"
	"github.com/jobha/backend/logger"
	"github.com/jobha/backend/mcp"
	"github.com/jobha/backend/parser"
	"github.com/jobha/backend/perplexity"
	"github.com/jobha/backend/search"
	"github.com/jobha/backend/storage"
	"github.com/jobha/backend/tools"
)

// @title Jobha API
// @version 1.0
// @description CV/job-search assistant: upload a CV, extract and segment its text, analyze it, and stream matching job postings.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@jobha.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	zlog, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize storage
	store, err := storage.NewJSONStore(cfg.DataDir, cfg.DBFile, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	files, err := storage.NewFileStore(cfg.UploadsDir)
	if err != nil {
		zlog.Fatal("failed to initialize uploads directory", zap.Error(err))
	}

	// Initialize the document pipeline and the Perplexity client
	converter := parser.NewConverter(cfg.SofficeBinary)
	docParser := parser.NewDocumentParser(converter, zlog)
	client := perplexity.NewClient(cfg, zlog)

	// Initialize the search coordinator
	coordinator := search.NewCoordinator(client, store, search.OptionsFromConfig(cfg), zlog)

	// Initialize auth
	jwtService := auth.NewJWTService(cfg)

	// Create handlers
	docHandler := handlers.NewDocumentHandler(docParser, client, store, files, zlog)
	jobsHandler := handlers.NewJobsHandler(coordinator, store, zlog)
	genHandler := handlers.NewGenerateHandler(client, store, zlog)
	authHandler := handlers.NewAuthHandler(store, jwtService, zlog)

	// Create MCP server with tool registry
	toolRegistry := tools.NewToolRegistry()
	toolRegistry.Register(tools.NewParseDocumentTool(docParser))
	toolRegistry.Register(tools.NewSegmentCVTool())
	toolRegistry.Register(tools.NewAnalyzeCVTool(client))
	toolRegistry.Register(tools.NewSearchJobsTool(client))
	toolRegistry.Register(tools.NewScoreJobTool())

	mcpServer := mcp.NewServer(toolRegistry, zlog)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Auth endpoints (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Protected auth endpoints
		authProtected := api.Group("/auth")
		authProtected.Use(auth.AuthMiddleware(jwtService))
		{
			authProtected.GET("/profile", authHandler.GetProfile)
			authProtected.PUT("/profile", authHandler.UpdateProfile)
		}

		// Document endpoints
		api.POST("/documents", docHandler.Upload)
		api.GET("/documents", docHandler.List)
		api.GET("/documents/:id", docHandler.Get)
		api.DELETE("/documents/:id", docHandler.Delete)
		api.GET("/documents/:id/html", docHandler.GetHTML)
		api.GET("/documents/:id/analysis", docHandler.GetAnalysis)

		// Job search endpoints
		api.GET("/documents/:id/jobs", jobsHandler.List)
		api.GET("/documents/:id/jobs/stream", jobsHandler.Stream)

		// Generation endpoints
		api.POST("/tailor", genHandler.TailorCV)
		api.POST("/cover-letter", genHandler.CoverLetter)
		api.GET("/documents/:id/tailored/:jobId", genHandler.GetTailoredCV)

		// MCP endpoints for external AI agents
		mcpServer.RegisterRoutes(api)
	}

	// SSE sessions can run for the whole search budget, so the write
	// timeout must exceed it.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: time.Duration(cfg.SearchBudgetSeconds+60) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited gracefully")
}
