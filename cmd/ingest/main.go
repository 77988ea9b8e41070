// Command ingest runs one catalog ingestion pass: read a snapshot file,
// normalize and embed every visible product, upsert into the vector store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kunstwinkel/zoeker/internal/config"
	dbRedis "github.com/kunstwinkel/zoeker/internal/db/redis"
	"github.com/kunstwinkel/zoeker/internal/domain"
	"github.com/kunstwinkel/zoeker/internal/embcache"
	"github.com/kunstwinkel/zoeker/internal/ingest"
	logpkg "github.com/kunstwinkel/zoeker/internal/logger"
	"github.com/kunstwinkel/zoeker/internal/metrics"
	"github.com/kunstwinkel/zoeker/internal/store"
	openaiTransport "github.com/kunstwinkel/zoeker/internal/transport/openai"
	"github.com/kunstwinkel/zoeker/internal/version"
)

func main() {
	snapshotPath := flag.String("snapshot", "", "path to the catalog snapshot JSON file")
	flag.Parse()

	if *snapshotPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -snapshot <file>")
		os.Exit(2)
	}

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting catalog ingestion",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("snapshot", *snapshotPath),
		zap.Int("batch_size", cfg.Ingest.BatchSize),
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

	metrics.Register()

	embedder := buildEmbedder(cfg, logger)

	snap, err := ingest.NewFileSource(*snapshotPath).Snapshot(ctx)
	if err != nil {
		logger.Fatal("Failed to load snapshot", zap.Error(err))
	}

	start := time.Now()
	stats, err := ingest.New(st, embedder, logger).
		WithBatchSize(cfg.Ingest.BatchSize).
		Run(ctx, snap)
	if err != nil {
		logger.Fatal("Ingestion failed",
			zap.Error(err),
			zap.Int("batches_committed", stats.Batches),
			zap.Int("products_committed", stats.Products),
		)
	}

	logger.Info("Ingestion complete",
		zap.Int("products", stats.Products),
		zap.Int("skipped", stats.Skipped),
		zap.Int("batches", stats.Batches),
		zap.Int("categories", stats.Categories),
		zap.Int("tags", stats.Tags),
		zap.Duration("took", time.Since(start)),
	)
}

// buildEmbedder assembles the embedder chain: OpenAI -> Cached (optional).
func buildEmbedder(cfg config.Config, logger *zap.Logger) domain.BatchEmbedder {
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
