package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/shopifake/catalog-search/vectordb"
)

// ── Filter Conversion ────────────────────────────────────────────────────────

// convertFilterSet converts a vectordb.FilterSet to a Qdrant filter.
func convertFilterSet(filters *vectordb.FilterSet) *qdrant.Filter {
	if filters == nil {
		return nil
	}

	filter := &qdrant.Filter{}

	if filters.Must != nil {
		filter.Must = convertConditionSet(filters.Must)
	}
	if filters.Should != nil {
		filter.Should = convertConditionSet(filters.Should)
	}
	if filters.MustNot != nil {
		filter.MustNot = convertConditionSet(filters.MustNot)
	}

	if len(filter.Must) == 0 && len(filter.Should) == 0 && len(filter.MustNot) == 0 {
		return nil
	}
	return filter
}

// convertConditionSet converts a vectordb.ConditionSet to Qdrant conditions.
func convertConditionSet(cs *vectordb.ConditionSet) []*qdrant.Condition {
	if cs == nil {
		return nil
	}

	var conditions []*qdrant.Condition
	for _, c := range cs.Conditions {
		for _, cond := range convertCondition(c) {
			if cond != nil {
				conditions = append(conditions, cond)
			}
		}
	}
	return conditions
}

// convertCondition converts a single vectordb.FilterCondition.
func convertCondition(c vectordb.FilterCondition) []*qdrant.Condition {
	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		return convertMatchCondition(cond)
	case *vectordb.MatchAnyCondition:
		return convertMatchAnyCondition(cond)
	default:
		return nil
	}
}

func convertMatchCondition(c *vectordb.MatchCondition) []*qdrant.Condition {
	switch v := c.Value.(type) {
	case string:
		return []*qdrant.Condition{qdrant.NewMatch(c.Field, v)}
	case bool:
		return []*qdrant.Condition{qdrant.NewMatchBool(c.Field, v)}
	case int:
		return []*qdrant.Condition{qdrant.NewMatchInt(c.Field, int64(v))}
	case int64:
		return []*qdrant.Condition{qdrant.NewMatchInt(c.Field, v)}
	case uint64:
		return []*qdrant.Condition{qdrant.NewMatchInt(c.Field, int64(v))}
	case float64:
		// JSON numbers decode as float64 by default.
		return []*qdrant.Condition{qdrant.NewMatchInt(c.Field, int64(v))}
	default:
		return nil
	}
}

func convertMatchAnyCondition(c *vectordb.MatchAnyCondition) []*qdrant.Condition {
	if len(c.Values) == 0 {
		return nil
	}

	// Detect type from first value.
	switch c.Values[0].(type) {
	case string:
		strs := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			if s, ok := v.(string); ok {
				strs = append(strs, s)
			}
		}
		return []*qdrant.Condition{qdrant.NewMatchKeywords(c.Field, strs...)}
	case int, int64, uint64, float64:
		ints := make([]int64, 0, len(c.Values))
		for _, v := range c.Values {
			switch n := v.(type) {
			case int:
				ints = append(ints, int64(n))
			case int64:
				ints = append(ints, n)
			case uint64:
				ints = append(ints, int64(n))
			case float64:
				ints = append(ints, int64(n))
			}
		}
		return []*qdrant.Condition{qdrant.NewMatchInts(c.Field, ints...)}
	}
	return nil
}

// ── Result Conversion ────────────────────────────────────────────────────────

// parseSearchResults converts a Qdrant query response to vectordb results.
// Ranking order is preserved as returned by the index.
func parseSearchResults(resp []*qdrant.ScoredPoint) ([]vectordb.SearchResult, error) {
	results := make([]vectordb.SearchResult, 0, len(resp))
	for _, r := range resp {
		id, err := extractPointID(r.GetId())
		if err != nil {
			return nil, err
		}
		results = append(results, vectordb.SearchResult{
			ID:      id,
			Score:   r.GetScore(),
			Payload: convertPayload(r.GetPayload()),
		})
	}
	return results, nil
}

// extractPointID extracts a numeric ID from Qdrant's PointId type. Catalog
// entity ids are numeric, so a UUID point is a foreign write and an error.
func extractPointID(id *qdrant.PointId) (uint64, error) {
	if id == nil {
		return 0, fmt.Errorf("qdrant: nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return v.Num, nil
	default:
		return 0, fmt.Errorf("qdrant: unexpected PointId type: %T", v)
	}
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}
