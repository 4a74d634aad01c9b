package qdrant

import (
	qdrant "github.com/qdrant/go-client/qdrant"
)

// extractVectorDetails safely extracts the vector size (embedding dimension)
// and distance metric from a Qdrant CollectionInfo.
//
// Qdrant represents vector configuration with nested protobuf "oneof"
// wrappers; this helper navigates the hierarchy and guards against nil
// dereferences. Missing or unexpected fields yield (0, "").
func extractVectorDetails(info *qdrant.CollectionInfo) (uint64, string) {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0, ""
	}

	if cfg, ok := info.Config.Params.VectorsConfig.Config.(*qdrant.VectorsConfig_Params); ok {
		return cfg.Params.Size, cfg.Params.Distance.String()
	}

	return 0, ""
}
