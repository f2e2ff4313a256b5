package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/code-harsh006/new-backend/config"
	"github.com/code-harsh006/new-backend/core/audio"
	"github.com/code-harsh006/new-backend/core/auth"
	"github.com/code-harsh006/new-backend/core/ratelimit"
	"github.com/code-harsh006/new-backend/db"
	"github.com/code-harsh006/new-backend/logger"
	"github.com/code-harsh006/new-backend/model"
	"github.com/code-harsh006/new-backend/repository"
	"github.com/code-harsh006/new-backend/storage"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogOutput,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Storage backend choice is resolved once here and injected below.
	backend, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}
	logger.Info("storage backend ready", logger.String("driver", cfg.StorageDriver))

	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database with GORM: %v", err)
	}
	defer db.CloseGormDB()

	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.AutoMigrateModels(&model.AudioRecord{}); err != nil {
		log.Fatalf("Failed to migrate audio records: %v", err)
	}

	if err := db.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer db.CloseRedis()
	log.Println("Successfully connected to Redis")

	userRepo := repository.NewMySQLUserRepository(db.DB)
	audioRepo := repository.NewGormAudioRepository(db.GormDB)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	audioService := audio.NewService(audioRepo, userRepo, backend, cfg.MaxFileSize)
	apiHandler := NewAPIHandler(audioService, userRepo, tokens, backend, cfg)

	authLimiter := ratelimit.NewRedisLimiter(db.RedisClient, "auth", cfg.AuthRateLimit, cfg.AuthRateWindow)
	uploadLimiter := ratelimit.NewRedisLimiter(db.RedisClient, "upload", cfg.UploadRateLimit, cfg.UploadRateWindow)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestLogMiddleware)

	// Authentication endpoints, rate limited by IP.
	router.HandleFunc("/api/auth/register",
		apiHandler.RateLimitByIP(authLimiter, apiHandler.RegisterHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login",
		apiHandler.RateLimitByIP(authLimiter, apiHandler.LoginHandler)).Methods(http.MethodPost)

	// User endpoints.
	router.HandleFunc("/api/users/me",
		apiHandler.AuthMiddleware(apiHandler.MeHandler)).Methods(http.MethodGet)

	// Audio endpoints.
	router.HandleFunc("/api/audio/upload",
		apiHandler.AuthMiddleware(apiHandler.RateLimitByUser(uploadLimiter, apiHandler.UploadHandler))).Methods(http.MethodPost)
	router.HandleFunc("/api/audio/mine",
		apiHandler.AuthMiddleware(apiHandler.MyAudioHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/audio/playlist",
		apiHandler.OptionalAuthMiddleware(apiHandler.PlaylistHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/audio/search",
		apiHandler.OptionalAuthMiddleware(apiHandler.PlaylistHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/audio/trending",
		apiHandler.TrendingHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/audio/{id:[0-9]+}",
		apiHandler.OptionalAuthMiddleware(apiHandler.GetAudioHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/audio/{id:[0-9]+}",
		apiHandler.AuthMiddleware(apiHandler.UpdateAudioHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/audio/{id:[0-9]+}",
		apiHandler.AuthMiddleware(apiHandler.DeleteAudioHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/audio/{id:[0-9]+}/play",
		apiHandler.OptionalAuthMiddleware(apiHandler.PlayHandler)).Methods(http.MethodPost)

	// Static file serving for the local backend. The minio backend resolves
	// to its own public object URLs, so no route is needed there.
	if local, ok := backend.(*storage.LocalBackend); ok {
		uploadsFileServer := http.FileServer(http.Dir(local.RootDir()))
		router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", uploadsFileServer))
	}

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s...", cfg.ServerAddr)
		log.Println("Upload audio via POST to /api/audio/upload")
		log.Println("Query playlists via GET /api/audio/playlist?mood=...&environment=...")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
