// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"go_5_phrase_pool/internal/config"
	"go_5_phrase_pool/internal/handlers"
	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"
	"go_5_phrase_pool/internal/repository"
	"go_5_phrase_pool/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := db.AutoMigrate(
		&model.Player{},
		&model.Phrase{},
		&model.Assignment{},
		&model.SkipRecord{},
		&model.CompletionRecord{},
	); err != nil {
		slog.Error("Error running migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Notifier (Redis未設定時はログ出力のみ)
	var notifier service.Notifier = &service.LogNotifier{}
	if config.Cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(config.Cfg.Redis.URL)
		if err != nil {
			slog.Error("Error parsing redis URL", slog.Any("error", err))
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			slog.Error("Error pinging redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisClient.Close()
		notifier = service.NewRedisNotifier(redisClient, config.Cfg.Redis.Channel)
		slog.Info("Redis notifier enabled", slog.String("channel", config.Cfg.Redis.Channel))
	} else {
		slog.Info("Redis URL not set, phrase events will only be logged")
	}

	// 4. Dependency Injection
	playerRepo := repository.NewGormPlayerRepository()
	phraseRepo := repository.NewGormPhraseRepository()
	assignRepo := repository.NewGormAssignmentRepository()
	completionRepo := repository.NewGormCompletionRepository()
	skipRepo := repository.NewGormSkipRepository()

	scorer := service.NewLetterRarityScorer()

	playerService := service.NewPlayerService(db, playerRepo)
	phraseService := service.NewPhraseService(db, phraseRepo, assignRepo, playerRepo, scorer, notifier, &config.Cfg)
	selectionService := service.NewSelectionService(db, phraseRepo, assignRepo, playerRepo, &config.Cfg)
	trackerService := service.NewTrackerService(db, phraseRepo, assignRepo, completionRepo, skipRepo)

	playerHandler := handlers.NewPlayerHandler(playerService, logger)
	phraseHandler := handlers.NewPhraseHandler(phraseService, logger)
	playHandler := handlers.NewPlayHandler(selectionService, trackerService, logger)

	// 5. Setup Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/players", playerHandler.RegisterPlayer)

		// --- Protected routes (require Player ID) ---
		r.Group(func(r chi.Router) {
			if config.Cfg.Auth.Enabled {
				slog.Info("Applying player authentication middleware")
				r.Use(middleware.PlayerAuthMiddleware(playerService))
			} else {
				slog.Warn("Player authentication disabled, using dev context middleware")
				r.Use(middleware.DevPlayerContextMiddleware)
			}

			r.Get("/players/{player_id}", playerHandler.GetPlayer)

			r.Route("/phrases", func(r chi.Router) {
				r.Post("/", phraseHandler.PostPhrase)
				r.Get("/next", playHandler.GetNextPhrase)
				r.Get("/batch", playHandler.GetPhraseBatch)
				r.Get("/{phrase_id}", phraseHandler.GetPhrase)
				r.Patch("/{phrase_id}/approval", phraseHandler.PatchApproval)
				r.Post("/{phrase_id}/complete", playHandler.PostComplete)
				r.Post("/{phrase_id}/skip", playHandler.PostSkip)
			})
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 6. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
