// Package store is the vector store: Postgres with the pgvector
// extension, accessed through GORM. It holds one row per product plus
// category/tag join tables, and answers cosine-similarity queries.
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps the GORM connection.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Migrate creates the schema. DDL is explicit rather than AutoMigrate
// because the embedding column type carries the vector dimensionality
// and GORM caches column types per model struct.
func (s *Store) Migrate(ctx context.Context, vectorDim int) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS products (
			id text PRIMARY KEY,
			title text NOT NULL DEFAULT '',
			full_title text NOT NULL DEFAULT '',
			description text NOT NULL DEFAULT '',
			content text NOT NULL DEFAULT '',
			url text NOT NULL DEFAULT '',
			visible boolean NOT NULL DEFAULT false,
			price double precision NOT NULL DEFAULT 0,
			old_price double precision,
			artist text NOT NULL DEFAULT '',
			dimensions text NOT NULL DEFAULT '',
			stock integer NOT NULL DEFAULT 0,
			stock_sold integer NOT NULL DEFAULT 0,
			product_type text NOT NULL DEFAULT 'unknown',
			image text NOT NULL DEFAULT '',
			embedding vector(%d),
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`, vectorDim),
		`CREATE TABLE IF NOT EXISTS categories (
			id text PRIMARY KEY,
			name text NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id text PRIMARY KEY,
			name text NOT NULL DEFAULT '',
			visible boolean NOT NULL DEFAULT true
		)`,
		`CREATE TABLE IF NOT EXISTS category_products (
			category_id text NOT NULL REFERENCES categories(id),
			product_id text NOT NULL,
			PRIMARY KEY (category_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS tag_products (
			tag_id text NOT NULL REFERENCES tags(id),
			product_id text NOT NULL,
			PRIMARY KEY (tag_id, product_id)
		)`,
		`CREATE INDEX IF NOT EXISTS products_embedding_idx
			ON products USING hnsw (embedding vector_cosine_ops)`,
	}

	for _, stmt := range stmts {
		if err := s.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Categories returns the id to display name map for all categories.
func (s *Store) Categories(ctx context.Context) (map[string]string, error) {
	var rows []categoryRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	names := make(map[string]string, len(rows))
	for _, r := range rows {
		names[r.ID] = r.Name
	}
	return names, nil
}
