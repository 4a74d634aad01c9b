// Package qdrant provides a dependency-injected Qdrant implementation of
// the vectordb.Service contract.
//
// It wraps the official Qdrant Go client and exposes the application-level
// operations the retrieval core needs: idempotent collection creation,
// overwrite-by-id point upserts, filtered similarity search, and stored
// vector lookup. Low-level SDK details (protobuf payload values, point id
// variants, filter conditions) stay inside this package.
//
// # Basic Usage
//
//	client, err := qdrant.NewClient(qdrant.DefaultConfig(), logger.NewNop())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	var db vectordb.Service = qdrant.NewAdapter(client)
//	err = db.EnsureCollection(ctx, "products", 1536)
//
// # Fx Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    fx.Invoke(func(db vectordb.Service) { ... }),
//	)
//
// A health check runs at construction so an unreachable Qdrant fails fast
// at startup instead of on the first query.
package qdrant
