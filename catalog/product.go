// Package catalog holds the catalog entity model and the pure functions
// that turn entities into embeddable text and index payload snapshots.
//
// The vector index stores a denormalized copy of these fields; catalog
// truth lives upstream and is never persisted here.
package catalog

// Product is a catalog entity as delivered by the ingestion boundary
// (webhook or bulk index request). Identity is externally assigned and
// immutable from the retrieval core's perspective.
type Product struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	SKU         string            `json:"sku,omitempty"`
	Slug        string            `json:"slug,omitempty"`
	// Price is a decimal string, e.g. "29.99". See ParsePriceCents for the
	// canonical payload encoding.
	Price      string            `json:"price,omitempty"`
	Stock      int64             `json:"stock,omitempty"`
	ShopID     int64             `json:"shop_id,omitempty"`
	CategoryID int64             `json:"category_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	IsActive   bool              `json:"is_active,omitempty"`
}
