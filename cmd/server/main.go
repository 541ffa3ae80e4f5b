package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pointpay/backend/docs"
	"github.com/pointpay/backend/internal/config"
	"github.com/pointpay/backend/internal/database"
	"github.com/pointpay/backend/internal/handlers"
	mW "github.com/pointpay/backend/internal/middleware"
	"github.com/pointpay/backend/internal/services"
	"github.com/pointpay/backend/internal/store"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Point Ledger Backend API
// @version 1.0
// @description API for the per-user point balance and transaction ledger
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("point.max_point", "MAX_POINT")
	viper.BindEnv("point.balance_store", "POINT_BALANCE_STORE")
	viper.BindEnv("point.history_store", "POINT_HISTORY_STORE")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "Point Ledger Backend API"
	docs.SwaggerInfo.Description = "API for the per-user point balance and transaction ledger"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	pointCfg := config.LoadPointConfig()

	// Select storage backends
	var balances store.BalanceStore
	switch pointCfg.BalanceStore {
	case config.BackendRedis:
		redisClient, err := database.InitRedis()
		if err != nil {
			log.Fatalf("Failed to initialize Redis balance store: %v", err)
		}
		defer redisClient.Close()
		balances = store.NewRedisBalanceStore(redisClient)
	case config.BackendMemory:
		balances = store.NewMemoryBalanceStore()
	default:
		log.Fatalf("Unknown balance store backend: %s", pointCfg.BalanceStore)
	}

	var history store.HistoryStore
	switch pointCfg.HistoryStore {
	case config.BackendPostgres:
		db := database.InitDatabase()
		defer db.Close()
		history = store.NewPostgresHistoryStore(db)
	case config.BackendMemory:
		history = store.NewMemoryHistoryStore()
	default:
		log.Fatalf("Unknown history store backend: %s", pointCfg.HistoryStore)
	}

	log.Printf("[POINT] max_point=%d balance_store=%s history_store=%s",
		pointCfg.MaxPoint, pointCfg.BalanceStore, pointCfg.HistoryStore)

	pointService := services.NewPointService(balances, history, pointCfg.MaxPoint)
	pointHandler := handlers.NewPointHandler(pointService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/point/{id}", pointHandler.GetPoint)
		r.Get("/point/{id}/histories", pointHandler.GetHistories)

		// Mutating endpoints; bearer auth only when a secret is configured
		r.Group(func(r chi.Router) {
			if mW.AuthEnabled() {
				r.Use(mW.AuthMiddleware)
			}

			r.Patch("/point/{id}/charge", pointHandler.Charge)
			r.Patch("/point/{id}/use", pointHandler.Use)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
