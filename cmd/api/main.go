package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/vitayushchyk/data-factory-test-task/docs"
	"github.com/vitayushchyk/data-factory-test-task/internal/config"
	"github.com/vitayushchyk/data-factory-test-task/internal/db"
	"github.com/vitayushchyk/data-factory-test-task/internal/handler"
	"github.com/vitayushchyk/data-factory-test-task/internal/loader"
	"github.com/vitayushchyk/data-factory-test-task/internal/repository"
	"github.com/vitayushchyk/data-factory-test-task/internal/scheduler"
	"github.com/vitayushchyk/data-factory-test-task/internal/service"
)

// @title Credit Portfolio Reporting API
// @version 1.0
// @description Plan-vs-actual performance reporting over credits, payments and monthly plans.

// @host localhost:8080
// @BasePath /

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	planRepo := repository.NewPlanRepository(conn)
	creditRepo := repository.NewCreditRepository(conn)
	dictRepo := repository.NewDictionaryRepository(conn)
	ingestRepo := repository.NewIngestRepository(conn)

	// Initial data import must run before category resolution: the dictionary
	// itself arrives through the loader on a fresh database.
	dataLoader := loader.New(ingestRepo, cfg.Import.DataDir)
	if cfg.Import.OnStart {
		logger.Info("Starting data import...")
		if err := dataLoader.ImportAll(context.Background()); err != nil {
			log.Fatalf("Failed to import source data: %v", err)
		}
		logger.Info("Data import completed")
	}

	cats, err := service.ResolveCategories(context.Background(), dictRepo)
	if err != nil {
		log.Fatalf("Failed to resolve dictionary categories: %v", err)
	}

	// Initialize services
	performanceService := service.NewPlanPerformanceService(planRepo)
	yearService := service.NewYearPerformanceService(planRepo, cats)
	importService := service.NewPlanImportService(planRepo, cats)
	creditService := service.NewCreditService(creditRepo, cats)

	// Initialize handlers
	planHandler := handler.NewPlanHandler(performanceService, yearService, importService)
	creditHandler := handler.NewCreditHandler(creditService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(handler.RequestIDContext)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/plans_performance", planHandler.GetPlansPerformance)
	r.Get("/year_performance", planHandler.GetYearPerformance)
	r.Post("/plans_insert", planHandler.InsertPlans)
	r.Get("/user_credits/{user_id}", creditHandler.GetUserCredits)

	// Scheduled resync of the source files
	var importScheduler *scheduler.Scheduler
	if cfg.Import.Enabled {
		schedCfg := scheduler.Config{
			Schedule: cfg.Import.Schedule,
			Timeout:  cfg.Import.Timeout,
			Enabled:  cfg.Import.Enabled,
		}
		importScheduler = scheduler.New(schedCfg, dataLoader, logger)
		if err := importScheduler.Start(); err != nil {
			logger.Error("Failed to start import scheduler", slog.String("error", err.Error()))
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		if importScheduler != nil {
			ctx := importScheduler.Stop()
			<-ctx.Done()
			logger.Info("Scheduler stopped")
		}

		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
