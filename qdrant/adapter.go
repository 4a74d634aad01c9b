package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/vectordb"
)

// Adapter implements vectordb.Service on top of a Client.
type Adapter struct {
	client *Client
}

// NewAdapter wraps a connected Client as a vectordb.Service.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// opContext bounds a dependency call with the configured timeout. A call
// that exceeds the bound is reported as dependency-unavailable.
func (a *Adapter) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := a.client.cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureCollection creates the collection with the given vector dimension if
// it is missing.
//
// Safe under concurrent invocation: two callers racing on creation resolve
// to "already exists", which is a success. The desired end state (collection
// present) is order-independent.
func (a *Adapter) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	if name == "" {
		return errs.Invalidf("qdrant: collection name cannot be empty")
	}
	if vectorSize == 0 {
		return errs.Configf("qdrant: vector size cannot be zero")
	}

	ctx, cancel := a.opContext(ctx)
	defer cancel()

	exists, err := a.client.api.CollectionExists(ctx, name)
	if err != nil {
		return errs.WrapUnavailable("qdrant: check collection", err)
	}
	if exists {
		return nil
	}

	a.client.log.Info("creating qdrant collection", nil, map[string]interface{}{
		"collection": name,
		"dimension":  vectorSize,
	})

	err = a.client.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		// A concurrent caller may have created it between the existence
		// check and the create call. Re-check before reporting failure.
		if exists, checkErr := a.client.api.CollectionExists(ctx, name); checkErr == nil && exists {
			return nil
		}
		return errs.WrapUnavailable(fmt.Sprintf("qdrant: create collection %q", name), err)
	}
	return nil
}

// Upsert writes points with overwrite-by-id semantics and Wait=true, so the
// data is persisted before the call returns. The batch either applies as a
// whole or the call fails.
func (a *Adapter) Upsert(ctx context.Context, collection string, points []vectordb.Point) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	structs := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		structs = append(structs, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(p.Payload),
		})
	}

	ctx, cancel := a.opContext(ctx)
	defer cancel()

	wait := true
	_, err := a.client.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         structs,
		Wait:           &wait,
	})
	if err != nil {
		return 0, errs.WrapUnavailable("qdrant: upsert", err)
	}

	return len(points), nil
}

// Search performs a similarity search ordered by descending score. TopK is
// clamped to [1, MaxTopK] server-side to bound cost.
func (a *Adapter) Search(ctx context.Context, req vectordb.SearchRequest) ([]vectordb.SearchResult, error) {
	if req.Collection == "" {
		return nil, errs.Invalidf("qdrant: collection name cannot be empty")
	}
	if len(req.Vector) == 0 {
		return nil, errs.Invalidf("qdrant: search vector cannot be empty")
	}

	topK := req.TopK
	if topK < 1 {
		topK = 1
	}
	if max := a.client.cfg.MaxTopK; max > 0 && topK > max {
		topK = max
	}

	ctx, cancel := a.opContext(ctx)
	defer cancel()

	limit := uint64(topK)
	resp, err := a.client.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: req.Collection,
		Query:          qdrant.NewQuery(req.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         convertFilterSet(req.Filters),
	})
	if err != nil {
		return nil, errs.WrapUnavailable("qdrant: search", err)
	}

	return parseSearchResults(resp)
}

// FetchVector returns the stored vector for a point id. A missing id is a
// normal outcome, not an error.
func (a *Adapter) FetchVector(ctx context.Context, collection string, id uint64) ([]float32, bool, error) {
	ctx, cancel := a.opContext(ctx)
	defer cancel()

	points, err := a.client.api.Get(ctx, &qdrant.GetPoints{
		CollectionName: collection,
		Ids:            []*qdrant.PointId{qdrant.NewIDNum(id)},
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, false, errs.WrapUnavailable("qdrant: get point", err)
	}
	if len(points) == 0 {
		return nil, false, nil
	}

	vector := points[0].GetVectors().GetVector().GetData()
	if len(vector) == 0 {
		return nil, false, nil
	}
	return vector, true, nil
}

// Delete removes points by id, waiting for completion.
func (a *Adapter) Delete(ctx context.Context, collection string, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, qdrant.NewIDNum(id))
	}

	ctx, cancel := a.opContext(ctx)
	defer cancel()

	wait := true
	_, err := a.client.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: pointIDs},
			},
		},
		Wait: &wait,
	})
	if err != nil {
		return errs.WrapUnavailable("qdrant: delete", err)
	}
	return nil
}

// GetCollection retrieves collection metadata, decoupled from the SDK's
// nested protobuf types.
func (a *Adapter) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	if name == "" {
		return nil, errs.Invalidf("qdrant: collection name cannot be empty")
	}

	ctx, cancel := a.opContext(ctx)
	defer cancel()

	info, err := a.client.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, errs.WrapUnavailable(fmt.Sprintf("qdrant: get collection %q", name), err)
	}

	size, distance := extractVectorDetails(info)
	return &vectordb.Collection{
		Name:       name,
		Status:     info.GetStatus().String(),
		VectorSize: size,
		Distance:   distance,
		PointCount: info.GetPointsCount(),
	}, nil
}
