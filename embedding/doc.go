// Package embedding turns text into fixed-dimension embedding vectors.
//
// It exposes a small Client around a Provider interface so application code
// never touches the underlying SDK. The only provider implemented today
// speaks the OpenAI-compatible /v1/embeddings API, which also covers
// self-hosted gateways via a configurable base URL.
//
// Contract notes:
//
//   - Empty or whitespace-only input is replaced by a literal placeholder
//     token before the provider call, so dimension probes and degenerate
//     catalog entities still produce a valid vector.
//   - Vector dimension is stable for a given provider configuration; the
//     indexer derives the collection dimension from one probe embedding.
//   - Missing credentials surface as a configuration error at construction.
//     Transient provider failures surface as dependency-unavailable errors;
//     retrying is the caller's concern.
package embedding
