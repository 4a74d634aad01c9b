package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopifake/catalog-search/assist"
	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/index"
	"github.com/shopifake/catalog-search/llm"
	"github.com/shopifake/catalog-search/logger"
	"github.com/shopifake/catalog-search/metrics"
	"github.com/shopifake/catalog-search/recommend"
	"github.com/shopifake/catalog-search/search"
	"github.com/shopifake/catalog-search/vectordb"
)

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.5, 0.5}, nil
}

func (fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.5, 0.5}
	}
	return out, nil
}

type fakeDB struct {
	searchResults []vectordb.SearchResult
	searchErr     error
	lastSearch    vectordb.SearchRequest
	vectorSize    uint64
	upserted      []vectordb.Point
}

func (f *fakeDB) EnsureCollection(_ context.Context, _ string, vectorSize uint64) error {
	f.vectorSize = vectorSize
	return nil
}

func (f *fakeDB) Upsert(_ context.Context, _ string, points []vectordb.Point) (int, error) {
	f.upserted = append(f.upserted, points...)
	return len(points), nil
}

func (f *fakeDB) Search(_ context.Context, req vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	f.lastSearch = req
	return f.searchResults, f.searchErr
}

func (f *fakeDB) FetchVector(_ context.Context, _ string, _ uint64) ([]float32, bool, error) {
	return nil, false, nil
}

func (f *fakeDB) Delete(_ context.Context, _ string, _ []uint64) error { return nil }

func (f *fakeDB) GetCollection(_ context.Context, name string) (*vectordb.Collection, error) {
	return &vectordb.Collection{Name: name, VectorSize: f.vectorSize}, nil
}

type fakeLLM struct {
	reply string
}

func (f *fakeLLM) Complete(_ context.Context, _ llm.CompletionRequest) (string, error) {
	return f.reply, nil
}

func newTestServer(db *fakeDB, llmFake *fakeLLM) *Server {
	log := logger.NewNop()
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test"})
	embedder := fakeEmbedder{}

	indexer := index.NewIndexer(index.DefaultConfig(), embedder, db, log, m)
	searchService := search.NewService(search.DefaultConfig(), embedder, db, indexer, log)
	resolver := recommend.NewResolver(embedder, db, indexer, log)
	assistService := assist.NewService(llmFake, searchService, log, m)

	return NewServer(DefaultConfig(), log, m, searchService, resolver, indexer, assistService)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakeDB{}, &fakeLLM{})

	rec := doJSON(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	db := &fakeDB{searchResults: []vectordb.SearchResult{
		{ID: 1, Score: 0.9, Payload: map[string]any{"name": "Trail Runner", "price_cents": int64(12999)}},
	}}
	s := newTestServer(db, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/search", `{"query":"running shoes","top_k":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Name != "Trail Runner" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
	if resp.Results[0].Price != "129.99" {
		t.Errorf("price = %q", resp.Results[0].Price)
	}
}

func TestHandleSearch_CategoryMembership(t *testing.T) {
	db := &fakeDB{}
	s := newTestServer(db, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/search",
		`{"query":"lamps","category_ids":[4,9]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	filters := db.lastSearch.Filters
	if filters == nil || filters.Must == nil || len(filters.Must.Conditions) != 1 {
		t.Fatalf("expected 1 Must condition, got %+v", filters)
	}
	any, ok := filters.Must.Conditions[0].(*vectordb.MatchAnyCondition)
	if !ok {
		t.Fatalf("expected a membership condition, got %T", filters.Must.Conditions[0])
	}
	if len(any.Values) != 2 || any.Values[0] != int64(4) || any.Values[1] != int64(9) {
		t.Errorf("membership values = %v", any.Values)
	}
}

func TestHandleSearch_EmptyQuery(t *testing.T) {
	s := newTestServer(&fakeDB{}, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/search", `{"query":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSearch_IndexUnavailable(t *testing.T) {
	db := &fakeDB{searchErr: errs.Unavailablef("index down")}
	s := newTestServer(db, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/search", `{"query":"shoes"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandleRecommendations_BothModes(t *testing.T) {
	s := newTestServer(&fakeDB{}, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/recommendations",
		`{"product_id":1,"query":"shoes","limit":3}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRecommendations_UnindexedReferenceIsEmpty(t *testing.T) {
	s := newTestServer(&fakeDB{}, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/recommendations", `{"product_id":99,"limit":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp recommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected empty results, got %+v", resp.Results)
	}
}

func TestHandleIndexProducts(t *testing.T) {
	db := &fakeDB{}
	s := newTestServer(db, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/products/index",
		`{"products":[{"id":1,"name":"Trail Runner","price":"129.99"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if len(db.upserted) != 1 {
		t.Errorf("expected 1 upserted point, got %d", len(db.upserted))
	}
}

func TestHandleWebhook_CreatedIndexes(t *testing.T) {
	db := &fakeDB{}
	s := newTestServer(db, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/webhook/product",
		`{"event":"product.created","data":{"id":7,"name":"Lamp"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if len(db.upserted) != 1 || db.upserted[0].ID != 7 {
		t.Errorf("expected product 7 indexed, got %+v", db.upserted)
	}
}

func TestHandleWebhook_DeleteAcknowledgedOnly(t *testing.T) {
	db := &fakeDB{}
	s := newTestServer(db, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/webhook/product",
		`{"event":"product.deleted","data":{"id":7}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp webhookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Status != "acknowledged" {
		t.Errorf("status = %q, want acknowledged", resp.Status)
	}
	if len(db.upserted) != 0 {
		t.Errorf("delete must not touch the index, got %+v", db.upserted)
	}
}

func TestHandleWebhook_UnknownEvent(t *testing.T) {
	s := newTestServer(&fakeDB{}, &fakeLLM{})

	rec := doJSON(t, s, http.MethodPost, "/api/webhook/product",
		`{"event":"product.archived","data":{"id":7}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleIntent(t *testing.T) {
	s := newTestServer(&fakeDB{}, &fakeLLM{reply: `{"intent":"faq"}`})

	rec := doJSON(t, s, http.MethodPost, "/api/intent", `{"prompt":"how do returns work?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp intentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Intent != "faq" {
		t.Errorf("intent = %q", resp.Intent)
	}
}

func TestHandleChat(t *testing.T) {
	s := newTestServer(&fakeDB{}, &fakeLLM{reply: "Hello!"})

	rec := doJSON(t, s, http.MethodPost, "/api/chat", `{"prompt":"hi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Response != "Hello!" {
		t.Errorf("response = %q", resp.Response)
	}
}
