package vectordb

// FilterCondition is the interface all filter conditions implement.
// Each adapter converts these to its native filter format.
type FilterCondition interface {
	// IsFilterCondition is a marker method to ensure type safety.
	IsFilterCondition()
}

// FilterSet supports Must (AND), Should (OR), and MustNot (NOT) clauses.
// Use with SearchRequest.Filters to scope search results.
//
// Example:
//
//	filters := &FilterSet{
//	    Must: &ConditionSet{
//	        Conditions: []FilterCondition{
//	            &MatchCondition{Field: "shop_id", Value: int64(7)},
//	        },
//	    },
//	}
type FilterSet struct {
	// Must: all conditions must match (AND).
	Must *ConditionSet `json:"must,omitempty"`
	// Should: at least one condition must match (OR).
	Should *ConditionSet `json:"should,omitempty"`
	// MustNot: none of the conditions may match (NOT).
	MustNot *ConditionSet `json:"mustNot,omitempty"`
}

// ConditionSet holds a group of conditions for a single clause.
type ConditionSet struct {
	Conditions []FilterCondition `json:"conditions,omitempty"`
}

// MatchCondition is an exact match filter (WHERE field = value).
// Supports string, bool, int and int64 values.
type MatchCondition struct {
	Field string `json:"field"`
	Value any    `json:"equalTo"`
}

func (c *MatchCondition) IsFilterCondition() {}

// MatchAnyCondition matches if the field is one of the given values
// (IN operator). Supports string and integer values.
type MatchAnyCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"anyOf"`
}

func (c *MatchAnyCondition) IsFilterCondition() {}

// Must is a convenience constructor for an AND-only filter set.
func Must(conditions ...FilterCondition) *FilterSet {
	if len(conditions) == 0 {
		return nil
	}
	return &FilterSet{Must: &ConditionSet{Conditions: conditions}}
}
