package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/index"
	"github.com/shopifake/catalog-search/logger"
	"github.com/shopifake/catalog-search/metrics"
	"github.com/shopifake/catalog-search/vectordb"
)

type fakeEmbedder struct {
	lastText string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.lastText = text
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

type fakeDB struct {
	vectors       map[uint64][]float32
	searchResults []vectordb.SearchResult
	searchErr     error
	lastSearch    vectordb.SearchRequest
	vectorSize    uint64
}

func (f *fakeDB) EnsureCollection(_ context.Context, _ string, vectorSize uint64) error {
	f.vectorSize = vectorSize
	return nil
}

func (f *fakeDB) Upsert(_ context.Context, _ string, points []vectordb.Point) (int, error) {
	return len(points), nil
}

func (f *fakeDB) Search(_ context.Context, req vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	f.lastSearch = req
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeDB) FetchVector(_ context.Context, _ string, id uint64) ([]float32, bool, error) {
	vec, ok := f.vectors[id]
	return vec, ok, nil
}

func (f *fakeDB) Delete(_ context.Context, _ string, _ []uint64) error { return nil }

func (f *fakeDB) GetCollection(_ context.Context, name string) (*vectordb.Collection, error) {
	return &vectordb.Collection{Name: name, VectorSize: f.vectorSize}, nil
}

func newTestResolver(embedder *fakeEmbedder, db *fakeDB) *Resolver {
	ix := index.NewIndexer(index.DefaultConfig(), embedder, db, logger.NewNop(),
		metrics.NewMetrics(metrics.Config{ServiceName: "test"}))
	return NewResolver(embedder, db, ix, logger.NewNop())
}

func result(id uint64, score float32, name string) vectordb.SearchResult {
	return vectordb.SearchResult{ID: id, Score: score, Payload: map[string]any{"name": name}}
}

func TestResolve_RejectsBothModes(t *testing.T) {
	r := newTestResolver(&fakeEmbedder{}, &fakeDB{})

	_, err := r.Resolve(context.Background(), Request{ProductID: 1, Query: "shoes", Limit: 3})
	if !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestResolve_RejectsNeitherMode(t *testing.T) {
	r := newTestResolver(&fakeEmbedder{}, &fakeDB{})

	_, err := r.Resolve(context.Background(), Request{Limit: 3})
	if !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestResolve_RejectsBadRatio(t *testing.T) {
	r := newTestResolver(&fakeEmbedder{}, &fakeDB{})

	_, err := r.Resolve(context.Background(), Request{Query: "shoes", ThresholdRatio: 1.5})
	if !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestByReference_MissingVectorIsEmpty(t *testing.T) {
	db := &fakeDB{vectors: map[uint64][]float32{}}
	r := newTestResolver(&fakeEmbedder{}, db)

	recs, err := r.ByReference(context.Background(), Request{ProductID: 99, Limit: 5})
	if err != nil {
		t.Fatalf("missing vector must not be an error, got %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result, got %v", recs)
	}
}

func TestByReference_ExcludesSelf(t *testing.T) {
	db := &fakeDB{
		vectors: map[uint64][]float32{7: {1, 0, 0}},
		searchResults: []vectordb.SearchResult{
			result(7, 1.0, "self"),
			result(8, 0.9, "close"),
			result(9, 0.8, "closer"),
		},
	}
	r := newTestResolver(&fakeEmbedder{}, db)

	recs, err := r.ByReference(context.Background(), Request{ProductID: 7, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rec := range recs {
		if rec.Product.ID == 7 {
			t.Errorf("reference id leaked into results: %+v", recs)
		}
	}
	if len(recs) != 2 {
		t.Errorf("expected 2 recommendations, got %d", len(recs))
	}
}

func TestByReference_OverFetchesByOne(t *testing.T) {
	db := &fakeDB{vectors: map[uint64][]float32{7: {1, 0, 0}}}
	r := newTestResolver(&fakeEmbedder{}, db)

	if _, err := r.ByReference(context.Background(), Request{ProductID: 7, Limit: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.lastSearch.TopK != 5 {
		t.Errorf("expected over-fetch of limit+1=5, got %d", db.lastSearch.TopK)
	}
}

func TestByReference_FewerCandidatesThanLimit(t *testing.T) {
	db := &fakeDB{
		vectors:       map[uint64][]float32{7: {1, 0, 0}},
		searchResults: []vectordb.SearchResult{result(7, 1.0, "self")},
	}
	r := newTestResolver(&fakeEmbedder{}, db)

	recs, err := r.ByReference(context.Background(), Request{ProductID: 7, Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty after self-exclusion, got %v", recs)
	}
}

func TestByText_EmbedsQuery(t *testing.T) {
	embedder := &fakeEmbedder{}
	db := &fakeDB{searchResults: []vectordb.SearchResult{result(3, 0.9, "match")}}
	r := newTestResolver(embedder, db)

	recs, err := r.ByText(context.Background(), Request{Query: "running shoes", Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.lastText != "running shoes" {
		t.Errorf("query not embedded, last text %q", embedder.lastText)
	}
	if db.lastSearch.TopK != 5 {
		t.Errorf("expected TopK 5, got %d", db.lastSearch.TopK)
	}
	if len(recs) != 1 || recs[0].Product.Name != "match" {
		t.Errorf("unexpected recommendations: %+v", recs)
	}
}

func TestResolve_ClampsLimit(t *testing.T) {
	db := &fakeDB{}
	r := newTestResolver(&fakeEmbedder{}, db)

	if _, err := r.Resolve(context.Background(), Request{Query: "shoes", Limit: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.lastSearch.TopK != MaxRecommendations {
		t.Errorf("expected clamp to %d, got %d", MaxRecommendations, db.lastSearch.TopK)
	}

	if _, err := r.Resolve(context.Background(), Request{Query: "shoes", Limit: -3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.lastSearch.TopK != 1 {
		t.Errorf("expected clamp to 1, got %d", db.lastSearch.TopK)
	}
}

func TestResolve_AppliesRelevanceFilter(t *testing.T) {
	db := &fakeDB{searchResults: []vectordb.SearchResult{
		result(1, 0.92, "strong"),
		result(2, 0.85, "good"),
		result(3, 0.30, "weak"),
	}}
	r := newTestResolver(&fakeEmbedder{}, db)

	recs, err := r.Resolve(context.Background(), Request{
		Query: "shoes", Limit: 5, MinScore: 0.3, ThresholdRatio: 0.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 after filtering, got %d: %+v", len(recs), recs)
	}
	if recs[0].Product.Name != "strong" || recs[1].Product.Name != "good" {
		t.Errorf("wrong survivors: %+v", recs)
	}
}

func TestResolve_SearchFailurePropagates(t *testing.T) {
	db := &fakeDB{searchErr: errs.Unavailablef("index down")}
	r := newTestResolver(&fakeEmbedder{}, db)

	_, err := r.Resolve(context.Background(), Request{Query: "shoes", Limit: 3})
	if !errors.Is(err, errs.ErrUnavailable) {
		t.Errorf("expected unavailable error, got %v", err)
	}
}
