package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loanportal/internal/config"
	"loanportal/internal/handler"
	"loanportal/internal/logging"
	"loanportal/internal/repository"
	"loanportal/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	metrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	ginmiddleware "github.com/slok/go-http-metrics/middleware/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.Logging)

	// Print version info
	log.Infof("Loan Approval Portal")
	log.Infof("Version: %s", Version)
	log.Infof("Build Time: %s", BuildTime)
	log.Infof("Git Commit: %s", GitCommit)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Prediction/chat backend
	client := service.NewLoanClient(&cfg.Service)
	log.Infof("✅ Loan backend client initialized")
	log.Infof("   - Base URL: %s", client.BaseURL())
	log.Infof("   - Timeout: %s", cfg.Service.Timeout)

	sessionOpts := []service.SessionOption{
		service.WithGreeting(cfg.Chat.Greeting),
		service.WithSessionTTL(cfg.Chat.SessionTTL),
	}

	// Optional prediction history
	var history *service.HistoryService
	if cfg.PostgreSQL.Enabled() {
		repo, err := repository.NewPostgresRepository(
			cfg.PostgreSQL.DSN,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()

		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to prepare database: %v", err)
		}

		history = service.NewHistoryService(repo)
		sessionOpts = append(sessionOpts, service.WithHistory(history))
		log.Info("✅ Connected to PostgreSQL database, prediction history enabled")
	} else {
		log.Warn("⚠️  Prediction history is disabled")
		log.Warn("   Set DATABASE_URL environment variable to record predictions")
	}

	// Optional persistent chat transcripts
	if cfg.Redis.Enabled() {
		store, err := repository.NewRedisTranscriptStore(context.Background(), cfg.Redis.URL, cfg.Redis.SessionTTL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer store.Close()

		sessionOpts = append(sessionOpts, service.WithTranscriptStore(store))
		log.Infof("✅ Connected to Redis, transcripts kept for %s", cfg.Redis.SessionTTL)
	} else {
		log.Info("Chat transcripts are kept in memory")
	}

	sessions := service.NewSessionManager(client, client, sessionOpts...)
	defer sessions.Stop()

	log.Info("✅ Services initialized")

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	// Per-route request metrics, exported on /metrics with the upstream ones
	httpMetrics := middleware.New(middleware.Config{
		Recorder: metrics.NewRecorder(metrics.Config{Prefix: "loanportal"}),
	})
	router.Use(ginmiddleware.Handler("", httpMetrics))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", handler.SessionHeader}
	corsConfig.ExposeHeaders = []string{handler.SessionHeader, "Content-Disposition"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "loan-approval-portal",
			"backend":    client.BaseURL(),
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	handler.RegisterRoutes(router.Group("/api/v1"), sessions, client, history)

	// Serve static files (frontend)
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	// Start server
	addr := cfg.Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	log.Infof("🚀 Starting server on %s", addr)
	log.Infof("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)
	log.Infof("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shut down")
	}
	if history != nil {
		history.Wait()
	}
	log.Info("✅ Server stopped")
}

// requestLogger logs one line per request through logrus
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"session": c.Writer.Header().Get(handler.SessionHeader),
		}).Debug("request")
	}
}
