package vectordb

import (
	"fmt"
	"time"
)

// FilterCondition is a predicate over a point payload.
type FilterCondition interface {
	Matches(payload map[string]any) bool
}

// FilterSet supports Must (AND), Should (OR), and MustNot (NOT) clauses.
// A nil FilterSet matches every point.
type FilterSet struct {
	Must    *ConditionSet `json:"must,omitempty"`
	Should  *ConditionSet `json:"should,omitempty"`
	MustNot *ConditionSet `json:"mustNot,omitempty"`
}

// ConditionSet holds a group of conditions for a single clause.
type ConditionSet struct {
	Conditions []FilterCondition `json:"conditions,omitempty"`
}

// Matches reports whether payload passes every clause of fs.
func (fs *FilterSet) Matches(payload map[string]any) bool {
	if fs == nil {
		return true
	}
	if fs.Must != nil {
		for _, c := range fs.Must.Conditions {
			if !c.Matches(payload) {
				return false
			}
		}
	}
	if fs.Should != nil && len(fs.Should.Conditions) > 0 {
		matched := false
		for _, c := range fs.Should.Conditions {
			if c.Matches(payload) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if fs.MustNot != nil {
		for _, c := range fs.MustNot.Conditions {
			if c.Matches(payload) {
				return false
			}
		}
	}
	return true
}

// MatchCondition is an exact match (field = value).
type MatchCondition struct {
	Field string `json:"field"`
	Value any    `json:"equalTo"`
}

func (c *MatchCondition) Matches(payload map[string]any) bool {
	v, ok := payload[c.Field]
	return ok && valuesEqual(v, c.Value)
}

// MatchAnyCondition matches if the value is one of Values (IN).
type MatchAnyCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"anyOf"`
}

func (c *MatchAnyCondition) Matches(payload map[string]any) bool {
	v, ok := payload[c.Field]
	if !ok {
		return false
	}
	for _, want := range c.Values {
		if valuesEqual(v, want) {
			return true
		}
	}
	return false
}

// MatchExceptCondition matches if the value is none of Values (NOT IN). A
// missing field matches.
type MatchExceptCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"noneOf"`
}

func (c *MatchExceptCondition) Matches(payload map[string]any) bool {
	v, ok := payload[c.Field]
	if !ok {
		return true
	}
	for _, unwanted := range c.Values {
		if valuesEqual(v, unwanted) {
			return false
		}
	}
	return true
}

// NumericRange defines bounds for numeric filtering. Nil bounds are open.
type NumericRange struct {
	Gt  *float64 `json:"greaterThan,omitempty"`
	Gte *float64 `json:"greaterThanOrEqualTo,omitempty"`
	Lt  *float64 `json:"lessThan,omitempty"`
	Lte *float64 `json:"lessThanOrEqualTo,omitempty"`
}

// NumericRangeCondition matches numeric payload values within Range.
type NumericRangeCondition struct {
	Field string       `json:"field"`
	Range NumericRange `json:"range"`
}

func (c *NumericRangeCondition) Matches(payload map[string]any) bool {
	v, ok := toFloat(payload[c.Field])
	if !ok {
		return false
	}
	r := c.Range
	switch {
	case r.Gt != nil && !(v > *r.Gt):
		return false
	case r.Gte != nil && !(v >= *r.Gte):
		return false
	case r.Lt != nil && !(v < *r.Lt):
		return false
	case r.Lte != nil && !(v <= *r.Lte):
		return false
	}
	return true
}

// TimeRange defines bounds for datetime filtering. Nil bounds are open.
type TimeRange struct {
	Gt  *time.Time `json:"after,omitempty"`
	Gte *time.Time `json:"atOrAfter,omitempty"`
	Lt  *time.Time `json:"before,omitempty"`
	Lte *time.Time `json:"atOrBefore,omitempty"`
}

// TimeRangeCondition matches payload values within Range. Values may be
// time.Time or RFC 3339 strings.
type TimeRangeCondition struct {
	Field string    `json:"field"`
	Range TimeRange `json:"range"`
}

func (c *TimeRangeCondition) Matches(payload map[string]any) bool {
	v, ok := toTime(payload[c.Field])
	if !ok {
		return false
	}
	r := c.Range
	switch {
	case r.Gt != nil && !v.After(*r.Gt):
		return false
	case r.Gte != nil && v.Before(*r.Gte):
		return false
	case r.Lt != nil && !v.Before(*r.Lt):
		return false
	case r.Lte != nil && v.After(*r.Lte):
		return false
	}
	return true
}

// NewFilterSet creates a FilterSet with the given clauses.
func NewFilterSet(clauses ...func(*FilterSet)) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must creates a Must clause (AND logic) with the given conditions.
func Must(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Must = &ConditionSet{Conditions: conditions}
	}
}

// Should creates a Should clause (OR logic) with the given conditions.
func Should(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Should = &ConditionSet{Conditions: conditions}
	}
}

// MustNot creates a MustNot clause (NOT logic) with the given conditions.
func MustNot(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.MustNot = &ConditionSet{Conditions: conditions}
	}
}

// NewMatch creates an exact match condition.
func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value}
}

// NewMatchAny creates an IN condition.
func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	validateHomogeneousTypes(values)
	return &MatchAnyCondition{Field: field, Values: values}
}

// NewMatchExcept creates a NOT IN condition.
func NewMatchExcept(field string, values ...any) *MatchExceptCondition {
	validateHomogeneousTypes(values)
	return &MatchExceptCondition{Field: field, Values: values}
}

// NewNumericRange creates a numeric range condition.
func NewNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Field: field, Range: r}
}

// NewTimeRange creates a datetime range condition.
func NewTimeRange(field string, r TimeRange) *TimeRangeCondition {
	return &TimeRangeCondition{Field: field, Range: r}
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		return parsed, err == nil
	}
	return time.Time{}, false
}

func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// validateHomogeneousTypes panics on mixed value types; mixing is a
// programming error in the caller.
func validateHomogeneousTypes(values []any) {
	if len(values) <= 1 {
		return
	}

	expected := typeCategory(values[0])
	if expected == "" {
		panic(fmt.Sprintf("vectordb: unsupported value type: %T", values[0]))
	}
	for i, v := range values[1:] {
		actual := typeCategory(v)
		if actual == "" {
			panic(fmt.Sprintf("vectordb: unsupported value type at index %d: %T", i+1, v))
		}
		if actual != expected {
			panic(fmt.Sprintf("vectordb: mixed types not allowed in MatchAny/MatchExcept: expected %s but got %s at index %d", expected, actual, i+1))
		}
	}
}

func typeCategory(value any) string {
	if _, ok := toFloat(value); ok {
		return "numeric"
	}
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	return ""
}
