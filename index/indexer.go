// Package index owns the write path of the vector index: lazy collection
// readiness and idempotent product upserts.
package index

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shopifake/catalog-search/catalog"
	"github.com/shopifake/catalog-search/embedding"
	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/logger"
	"github.com/shopifake/catalog-search/metrics"
	"github.com/shopifake/catalog-search/vectordb"
)

// probeText is embedded once to discover the provider's vector dimension.
const probeText = "dimension probe"

// embedBatchSize is how many projected texts go into one provider call.
const embedBatchSize = 32

// Indexer writes catalog entities into the vector index. It is safe for
// concurrent use; readiness initialization is serialized internally.
type Indexer struct {
	cfg      *Config
	embedder embedding.Service
	db       vectordb.Service
	log      *logger.Logger
	metrics  *metrics.Metrics

	mu        sync.Mutex
	ready     bool
	dimension uint64
}

// NewIndexer constructs an Indexer. Collection creation is deferred until
// the first EnsureReady or UpsertProducts call, because the dimension is
// only known after a probe embedding.
func NewIndexer(cfg *Config, embedder embedding.Service, db vectordb.Service, log *logger.Logger, m *metrics.Metrics) *Indexer {
	return &Indexer{
		cfg:      cfg,
		embedder: embedder,
		db:       db,
		log:      log,
		metrics:  m,
	}
}

// Collection returns the collection name this indexer writes to.
func (ix *Indexer) Collection() string {
	return ix.cfg.Collection
}

// EnsureReady makes sure the collection exists with the dimension of the
// configured embedding model, probing the provider once.
//
// Idempotent and safe under concurrent invocation: callers racing here
// collapse onto one initialization, and a creation race at the index is
// resolved as "already exists" by the adapter. A pre-existing collection
// with a different dimension is a fatal configuration error, not a
// per-request failure.
func (ix *Indexer) EnsureReady(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.ready {
		return nil
	}

	probe, err := ix.embedder.Embed(ctx, probeText)
	if err != nil {
		return err
	}
	dim := uint64(len(probe))
	if dim == 0 {
		return errs.Configf("index: embedding provider returned a zero-dimension vector")
	}

	if err := ix.db.EnsureCollection(ctx, ix.cfg.Collection, dim); err != nil {
		return err
	}

	col, err := ix.db.GetCollection(ctx, ix.cfg.Collection)
	if err != nil {
		return err
	}
	if col.VectorSize != dim {
		return errs.Configf("index: collection %q has dimension %d, embedding model produces %d",
			ix.cfg.Collection, col.VectorSize, dim)
	}

	ix.dimension = dim
	ix.ready = true
	ix.log.Info("vector index ready", nil, map[string]interface{}{
		"collection": ix.cfg.Collection,
		"dimension":  dim,
	})
	return nil
}

// UpsertProducts embeds and writes the given products with overwrite-by-id
// semantics, returning the number of points written.
//
// Entities are independent, so projected texts are embedded in parallel
// batches; upsert order does not affect the final state (last write wins
// per id, and ids within one call are distinct).
func (ix *Indexer) UpsertProducts(ctx context.Context, products []catalog.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	for _, p := range products {
		if p.ID <= 0 {
			return 0, errs.Invalidf("index: product id %d is not a valid point id", p.ID)
		}
	}

	if err := ix.EnsureReady(ctx); err != nil {
		return 0, err
	}

	texts := make([]string, len(products))
	for i, p := range products {
		texts[i] = catalog.ProjectText(p)
	}

	vectors := make([][]float32, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.cfg.EmbedParallelism)
	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))
		g.Go(func() error {
			batch, err := ix.embedder.EmbedBatch(gctx, texts[start:end])
			if err != nil {
				return err
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	points := make([]vectordb.Point, 0, len(products))
	for i, p := range products {
		payload, err := catalog.BuildPayload(p)
		if err != nil {
			return 0, err
		}
		points = append(points, vectordb.Point{
			ID:      uint64(p.ID),
			Vector:  vectors[i],
			Payload: payload,
		})
	}

	count, err := ix.db.Upsert(ctx, ix.cfg.Collection, points)
	if err != nil {
		return 0, err
	}

	ix.metrics.AddProductsIndexed(count)
	ix.log.Info("products indexed", nil, map[string]interface{}{
		"collection": ix.cfg.Collection,
		"count":      count,
	})
	return count, nil
}
