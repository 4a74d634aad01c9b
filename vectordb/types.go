package vectordb

// Point is a stored index entry: a vector plus a denormalized payload
// snapshot of the source entity. The index owns no reference back to the
// catalog; the payload is refreshed only on explicit upsert.
type Point struct {
	// ID is the externally assigned, stable identifier of the source entity.
	ID uint64 `json:"id"`

	// Vector is the dense embedding representation.
	Vector []float32 `json:"vector"`

	// Payload holds the display and scoping fields stored with the vector.
	Payload map[string]any `json:"payload,omitempty"`
}

// SearchRequest represents a single similarity search query.
type SearchRequest struct {
	// Collection is the target collection to search in.
	Collection string `json:"collection"`

	// Vector is the query embedding to find similar vectors for.
	Vector []float32 `json:"vector"`

	// TopK is the maximum number of results to return. Adapters clamp it to
	// their configured ceiling.
	TopK int `json:"topK"`

	// Filters is optional index-side metadata filtering.
	Filters *FilterSet `json:"filters,omitempty"`
}

// SearchResult is a single ranked result with its similarity score.
type SearchResult struct {
	// ID is the identifier of the matched point.
	ID uint64 `json:"id"`

	// Score is the similarity score (higher = more similar for cosine).
	Score float32 `json:"score"`

	// Payload contains the snapshot stored with the vector.
	Payload map[string]any `json:"payload"`
}

// Collection contains metadata about a vector collection.
type Collection struct {
	// Name is the unique identifier of the collection.
	Name string `json:"name"`

	// Status indicates the operational state (e.g., "Green", "Yellow").
	Status string `json:"status"`

	// VectorSize is the dimension of vectors in this collection.
	VectorSize uint64 `json:"vectorSize"`

	// Distance is the similarity metric (e.g., "Cosine").
	Distance string `json:"distance"`

	// PointCount is the number of stored points.
	PointCount uint64 `json:"pointCount"`
}
