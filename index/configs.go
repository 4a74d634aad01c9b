package index

import (
	"os"
	"strconv"

	"github.com/shopifake/catalog-search/errs"
)

// Config holds indexer settings.
type Config struct {
	// Collection is the vector index collection products are written to.
	Collection string
	// EmbedParallelism bounds concurrent embedding calls per upsert batch.
	EmbedParallelism int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Collection:       "products",
		EmbedParallelism: 4,
	}
}

// NewConfig reads indexer settings from the environment, falling back to
// defaults for anything unset.
func NewConfig() (*Config, error) {
	cfg := DefaultConfig()

	if collection := os.Getenv("QDRANT_COLLECTION"); collection != "" {
		cfg.Collection = collection
	}
	if raw := os.Getenv("INDEX_EMBED_PARALLELISM"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, errs.Configf("index: invalid INDEX_EMBED_PARALLELISM %q", raw)
		}
		cfg.EmbedParallelism = n
	}

	return cfg, nil
}
