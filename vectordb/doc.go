// Package vectordb defines the database-agnostic contract for vector
// similarity search used by the retrieval core.
//
// It provides a common interface for vector indexes, allowing the
// application to switch between backends (Qdrant today, pgVector later)
// without changing application code. The package is intentionally
// dependency-free: adapters own their SDK imports.
//
// Example usage:
//
//	func NewSearchService(db vectordb.Service) *SearchService {
//	    return &SearchService{db: db}
//	}
//
//	// Works with any implementation:
//	// - qdrant.NewAdapter(client, cfg)
//
// Filters are expressed with FilterSet (Must / Should / MustNot clauses)
// and converted to the backend's native filter format by each adapter.
// The index, not the caller, evaluates filters, so scoped searches never
// leak candidates from other shops or categories.
package vectordb
