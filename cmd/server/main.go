package main

import (
	"context"                         // Context for startup and shutdown
	"errors"                          // http.ErrServerClosed comparison
	"finance_tracker/internal/api"    // Custom package for API handlers
	"finance_tracker/internal/config" // Custom package for configuration
	"finance_tracker/internal/db"     // Database connection and bootstrap
	"finance_tracker/internal/store"  // Persistence
	"finance_tracker/internal/utils"  // Tokens and cache
	"net/http"                        // HTTP server
	"os"                              // Signals
	"os/signal"                       // Signal handling
	"syscall"                         // SIGTERM
	"time"                            // Timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/sync/errgroup"   // Server and shutdown goroutines
)

const shutdownTimeout = 10 * time.Second

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	setupLogger(cfg)

	// Connect to the database and prepare it before accepting requests
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Bootstrap(gdb, cfg.AutoMigrate); err != nil {
		logrus.Fatalf("failed to bootstrap DB: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup Redis client; caching is disabled when no address is configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		defer redisClient.Close()
		// Test Redis connection
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, list caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := api.NewRouter(api.Deps{
		Users:          store.NewUserStore(gdb),
		Categories:     store.NewCategoryStore(gdb),
		Expenses:       store.NewExpenseStore(gdb),
		Budgets:        store.NewBudgetStore(gdb),
		Tokens:         utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Cache:          utils.NewCache(redisClient, cfg.CacheTTL),
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}

// setupLogger configures the global logrus logger
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
