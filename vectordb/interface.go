package vectordb

import "context"

// Service is the common interface for all vector indexes.
//
// Ranking contract: Search returns results ordered by descending similarity
// score. Consumers (the relevance filter in particular) depend on that order
// and never re-sort.
type Service interface {
	// EnsureCollection creates a collection with the given vector dimension
	// if it does not exist. Safe to call concurrently: a creation race that
	// ends in "already exists" is a success, not an error.
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error

	// Upsert writes points with overwrite-by-id semantics and returns the
	// number of points written. The batch is applied as a whole: if the
	// index rejects it, no partial success is reported.
	Upsert(ctx context.Context, collection string, points []Point) (int, error)

	// Search performs a similarity search. The request's TopK is clamped to
	// the adapter's configured ceiling regardless of what the caller asked
	// for. Filters restrict the candidate set index-side.
	Search(ctx context.Context, req SearchRequest) ([]SearchResult, error)

	// FetchVector returns the stored vector for a point id. A missing id is
	// a normal outcome, reported by the boolean, not an error.
	FetchVector(ctx context.Context, collection string, id uint64) ([]float32, bool, error)

	// Delete removes points by id. Not called by the ingestion path (webhook
	// deletes are acknowledged only); kept for operational cleanup.
	Delete(ctx context.Context, collection string, ids []uint64) error

	// GetCollection retrieves metadata about a collection.
	GetCollection(ctx context.Context, name string) (*Collection, error)
}
