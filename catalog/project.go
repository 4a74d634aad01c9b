package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// ProjectText derives the canonical text used to embed a product.
//
// Only semantically meaningful fields participate: name, description, and
// free-form attributes rendered as "key: value" lines. Identifiers, price,
// stock, slug, activity flag, and timestamps never enter the embedded text;
// they would bias similarity toward irrelevant numeric and ID tokens.
//
// Deterministic: attribute lines are sorted by key. An entity with no
// meaningful fields collapses to an empty string, which the embedding
// client's placeholder rule then handles.
func ProjectText(p Product) string {
	parts := make([]string, 0, 2+len(p.Attributes))

	if name := strings.TrimSpace(p.Name); name != "" {
		parts = append(parts, name)
	}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		parts = append(parts, desc)
	}

	if len(p.Attributes) > 0 {
		keys := make([]string, 0, len(p.Attributes))
		for k := range p.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := strings.TrimSpace(p.Attributes[k])
			if v == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", strings.TrimSpace(k), v))
		}
	}

	return strings.Join(parts, "\n")
}
