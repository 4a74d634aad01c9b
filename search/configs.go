package search

import (
	"os"
	"strconv"

	"github.com/shopifake/catalog-search/errs"
	"github.com/shopifake/catalog-search/relevance"
)

// Config holds the operator defaults applied to queries that do not set
// their own relevance knobs.
type Config struct {
	// DefaultTopK is used when a query asks for zero results.
	DefaultTopK int
	// DefaultMinScore is the absolute relevance floor applied when the
	// query does not supply one. Zero disables the floor.
	DefaultMinScore float32
	// DefaultThresholdRatio is the relative cutoff applied when the query
	// does not supply one. Zero disables the relative check.
	DefaultThresholdRatio float32
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopK: 10,
	}
}

// NewConfig reads search defaults from the environment, falling back to
// defaults for anything unset.
func NewConfig() (*Config, error) {
	cfg := DefaultConfig()

	if raw := os.Getenv("SEARCH_TOP_K"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, errs.Configf("search: invalid SEARCH_TOP_K %q", raw)
		}
		cfg.DefaultTopK = n
	}
	if raw := os.Getenv("SEARCH_MIN_SCORE"); raw != "" {
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil || f < 0 || f > 1 {
			return nil, errs.Configf("search: invalid SEARCH_MIN_SCORE %q", raw)
		}
		cfg.DefaultMinScore = float32(f)
	}
	if raw := os.Getenv("SEARCH_THRESHOLD_RATIO"); raw != "" {
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, errs.Configf("search: invalid SEARCH_THRESHOLD_RATIO %q", raw)
		}
		if err := relevance.ValidateRatio(float32(f)); err != nil {
			return nil, errs.Configf("search: invalid SEARCH_THRESHOLD_RATIO %q", raw)
		}
		cfg.DefaultThresholdRatio = float32(f)
	}

	return cfg, nil
}
