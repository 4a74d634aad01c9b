package index

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopifake/catalog-search/catalog"
	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/logger"
	"github.com/shopifake/catalog-search/metrics"
	"github.com/shopifake/catalog-search/vectordb"
)

type fakeEmbedder struct {
	mu         sync.Mutex
	dimension  int
	embedCalls int
	batchCalls int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls++
	return make([]float32, f.dimension), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, f.dimension)
	}
	return out, nil
}

type fakeDB struct {
	mu          sync.Mutex
	ensureCalls int
	vectorSize  uint64
	// existingSize, when set, simulates a collection created with a
	// different dimension.
	existingSize uint64
	upserted     []vectordb.Point
}

func (f *fakeDB) EnsureCollection(_ context.Context, _ string, vectorSize uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureCalls++
	if f.vectorSize == 0 {
		f.vectorSize = vectorSize
	}
	return nil
}

func (f *fakeDB) Upsert(_ context.Context, _ string, points []vectordb.Point) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, points...)
	return len(points), nil
}

func (f *fakeDB) Search(_ context.Context, _ vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	return nil, nil
}

func (f *fakeDB) FetchVector(_ context.Context, _ string, _ uint64) ([]float32, bool, error) {
	return nil, false, nil
}

func (f *fakeDB) Delete(_ context.Context, _ string, _ []uint64) error { return nil }

func (f *fakeDB) GetCollection(_ context.Context, name string) (*vectordb.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	size := f.vectorSize
	if f.existingSize != 0 {
		size = f.existingSize
	}
	return &vectordb.Collection{Name: name, VectorSize: size}, nil
}

func newTestIndexer(embedder *fakeEmbedder, db *fakeDB) *Indexer {
	return NewIndexer(DefaultConfig(), embedder, db, logger.NewNop(),
		metrics.NewMetrics(metrics.Config{ServiceName: "test"}))
}

func makeProducts(n int) []catalog.Product {
	products := make([]catalog.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, catalog.Product{
			ID:          int64(i),
			Name:        fmt.Sprintf("Product %d", i),
			Description: "A product.",
		})
	}
	return products
}

func TestEnsureReady_ProbesDimension(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4}
	db := &fakeDB{}
	ix := newTestIndexer(embedder, db)

	if err := ix.EnsureReady(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.vectorSize != 4 {
		t.Errorf("collection created with dimension %d, want 4", db.vectorSize)
	}
}

func TestEnsureReady_InitializesOnce(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4}
	db := &fakeDB{}
	ix := newTestIndexer(embedder, db)

	for i := 0; i < 3; i++ {
		if err := ix.EnsureReady(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if embedder.embedCalls != 1 {
		t.Errorf("expected 1 probe embedding, got %d", embedder.embedCalls)
	}
	if db.ensureCalls != 1 {
		t.Errorf("expected 1 ensure call, got %d", db.ensureCalls)
	}
}

func TestEnsureReady_Concurrent(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4}
	db := &fakeDB{}
	ix := newTestIndexer(embedder, db)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ix.EnsureReady(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if db.ensureCalls != 1 {
		t.Errorf("concurrent callers must collapse to 1 creation, got %d", db.ensureCalls)
	}
}

func TestEnsureReady_DimensionMismatch(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4}
	db := &fakeDB{existingSize: 8}
	ix := newTestIndexer(embedder, db)

	err := ix.EnsureReady(context.Background())
	if !errors.Is(err, errs.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestUpsertProducts(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4}
	db := &fakeDB{}
	ix := newTestIndexer(embedder, db)

	count, err := ix.UpsertProducts(context.Background(), makeProducts(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 indexed, got %d", count)
	}
	if len(db.upserted) != 3 {
		t.Fatalf("expected 3 points, got %d", len(db.upserted))
	}
	if db.upserted[0].ID != 1 || db.upserted[2].ID != 3 {
		t.Errorf("point ids wrong: %+v", db.upserted)
	}
	if db.upserted[1].Payload["name"] != "Product 2" {
		t.Errorf("payload missing name: %+v", db.upserted[1].Payload)
	}
}

func TestUpsertProducts_Empty(t *testing.T) {
	ix := newTestIndexer(&fakeEmbedder{dimension: 4}, &fakeDB{})

	count, err := ix.UpsertProducts(context.Background(), nil)
	if err != nil || count != 0 {
		t.Errorf("expected (0, nil), got (%d, %v)", count, err)
	}
}

func TestUpsertProducts_InvalidID(t *testing.T) {
	ix := newTestIndexer(&fakeEmbedder{dimension: 4}, &fakeDB{})

	_, err := ix.UpsertProducts(context.Background(), []catalog.Product{{ID: 0, Name: "x"}})
	if !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("expected validation error, got %v", err)
	}
}
