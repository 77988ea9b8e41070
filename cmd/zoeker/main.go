package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kunstwinkel/zoeker/internal/advice"
	"github.com/kunstwinkel/zoeker/internal/config"
	dbRedis "github.com/kunstwinkel/zoeker/internal/db/redis"
	"github.com/kunstwinkel/zoeker/internal/domain"
	"github.com/kunstwinkel/zoeker/internal/embcache"
	logpkg "github.com/kunstwinkel/zoeker/internal/logger"
	"github.com/kunstwinkel/zoeker/internal/metrics"
	searchuc "github.com/kunstwinkel/zoeker/internal/search"
	"github.com/kunstwinkel/zoeker/internal/store"
	"github.com/kunstwinkel/zoeker/internal/taxonomy"
	chiTransport "github.com/kunstwinkel/zoeker/internal/transport/chi"
	openaiTransport "github.com/kunstwinkel/zoeker/internal/transport/openai"
	"github.com/kunstwinkel/zoeker/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting zoeker API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	st, err := store.Open(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to open vector store", zap.Error(err))
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Vector store not ready", zap.Error(err))
	}
	if err := st.Migrate(ctx, cfg.Embedding.Dimensions); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	logger.Info("Connected to vector store")

	metrics.Register()

	queryEmbedder := buildEmbedder(cfg, logger)

	tax, err := taxonomy.Load(ctx, st)
	if err != nil {
		logger.Fatal("Failed to load taxonomy", zap.Error(err))
	}
	logger.Info("Taxonomy loaded", zap.Int("themes", len(tax.Themes())))

	var primary advice.Provider
	if cfg.Advice.Enabled {
		primary = openaiTransport.NewAdvisor(&openaiTransport.AdvisorConfig{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Advice.Model,
			Logger:  logger,
		})
	}
	advisor := advice.NewGenerator(primary, logger)

	searchSvc := searchuc.New(st, queryEmbedder, advisor, tax).
		WithRanking(cfg.Search.SimilarityFloor, cfg.Search.ResultLimit).
		WithProductBaseURL(cfg.Search.ProductBaseURL)

	server := chiTransport.NewServer(searchSvc, st, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedder chain: OpenAI -> Cached (optional).
func buildEmbedder(cfg config.Config, logger *zap.Logger) domain.Embedder {
	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	if len(cfg.Cache.Addrs) == 0 {
		return base
	}

	kv, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Cache.Addrs,
		Password: cfg.Cache.Password,
	})
	if err != nil {
		logger.Warn("Embedding cache disabled", zap.Error(err))
		return base
	}

	logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
	return embcache.New(base, kv, ttl, metrics.EmbeddingCacheTotal, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"error":   "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
