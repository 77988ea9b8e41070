package domain

import "errors"

var (
	// ErrInvalidQuery signals a missing or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingUnavailable signals an embedding provider transport failure.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	// ErrEmbeddingRateLimited signals an embedding provider rate limit or quota hit.
	ErrEmbeddingRateLimited = errors.New("embedding service rate limited")
	// ErrStoreUnavailable signals a vector store connectivity or query failure.
	ErrStoreUnavailable = errors.New("vector store unavailable")
	// ErrIngestionBatch signals a failed ingestion batch; the run aborts and
	// prior batches stay committed.
	ErrIngestionBatch = errors.New("ingestion batch failed")
)
