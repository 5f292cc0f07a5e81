package qdrant

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Aleph-Alpha/inference-client/v1/vectordb"
)

// ── Filter Conversion ────────────────────────────────────────────────────────

// convertFilterSet converts a vectordb.FilterSet to a Qdrant filter. Empty
// filter sets become nil.
func convertFilterSet(filters *vectordb.FilterSet) (*qdrant.Filter, error) {
	if filters == nil {
		return nil, nil
	}

	filter := &qdrant.Filter{}
	var err error
	if filter.Must, err = convertConditionSet(filters.Must); err != nil {
		return nil, err
	}
	if filter.Should, err = convertConditionSet(filters.Should); err != nil {
		return nil, err
	}
	if filter.MustNot, err = convertConditionSet(filters.MustNot); err != nil {
		return nil, err
	}

	if len(filter.Must) == 0 && len(filter.Should) == 0 && len(filter.MustNot) == 0 {
		return nil, nil
	}
	return filter, nil
}

func convertConditionSet(cs *vectordb.ConditionSet) ([]*qdrant.Condition, error) {
	if cs == nil {
		return nil, nil
	}

	conditions := make([]*qdrant.Condition, 0, len(cs.Conditions))
	for _, c := range cs.Conditions {
		cond, err := convertCondition(c)
		if err != nil {
			return nil, err
		}
		if cond != nil {
			conditions = append(conditions, cond)
		}
	}
	return conditions, nil
}

func convertCondition(c vectordb.FilterCondition) (*qdrant.Condition, error) {
	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		return convertMatch(cond.Field, cond.Value)
	case *vectordb.MatchAnyCondition:
		return convertMatchAny(cond.Field, cond.Values, false)
	case *vectordb.MatchExceptCondition:
		return convertMatchAny(cond.Field, cond.Values, true)
	case *vectordb.NumericRangeCondition:
		r := cond.Range
		if r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil {
			return nil, nil
		}
		return qdrant.NewRange(cond.Field, &qdrant.Range{Gt: r.Gt, Gte: r.Gte, Lt: r.Lt, Lte: r.Lte}), nil
	case *vectordb.TimeRangeCondition:
		r := cond.Range
		if r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil {
			return nil, nil
		}
		return qdrant.NewDatetimeRange(cond.Field, &qdrant.DatetimeRange{
			Gt:  toTimestamp(r.Gt),
			Gte: toTimestamp(r.Gte),
			Lt:  toTimestamp(r.Lt),
			Lte: toTimestamp(r.Lte),
		}), nil
	default:
		return nil, fmt.Errorf("qdrant: unsupported filter condition %T", c)
	}
}

func convertMatch(key string, value any) (*qdrant.Condition, error) {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(key, v), nil
	case bool:
		return qdrant.NewMatchBool(key, v), nil
	}

	n, ok := toInt64(value)
	if ok {
		return qdrant.NewMatchInt(key, n), nil
	}
	if f, isFloat := value.(float64); isFloat {
		// Qdrant has no exact float match; a closed range is equivalent.
		return qdrant.NewRange(key, &qdrant.Range{Gte: &f, Lte: &f}), nil
	}
	return nil, fmt.Errorf("qdrant: unsupported match value %T for %q", value, key)
}

func convertMatchAny(key string, values []any, except bool) (*qdrant.Condition, error) {
	if len(values) == 0 {
		return nil, nil
	}

	if _, isString := values[0].(string); isString {
		strs := make([]string, 0, len(values))
		for _, v := range values {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("qdrant: mixed values for %q", key)
			}
			strs = append(strs, s)
		}
		if except {
			return qdrant.NewMatchExceptKeywords(key, strs...), nil
		}
		return qdrant.NewMatchKeywords(key, strs...), nil
	}

	ints := make([]int64, 0, len(values))
	for _, v := range values {
		n, ok := toInt64(v)
		if !ok {
			return nil, fmt.Errorf("qdrant: only string and integer sets are supported for %q, got %T", key, v)
		}
		ints = append(ints, n)
	}
	if except {
		return qdrant.NewMatchExceptInts(key, ints...), nil
	}
	return qdrant.NewMatchInts(key, ints...), nil
}

// toInt64 accepts integer types and integral float64 values (JSON numbers).
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n), true
		}
	}
	return 0, false
}

func toTimestamp(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}

// ── Point Conversion ─────────────────────────────────────────────────────────

// validatePointID rejects IDs Qdrant cannot store. Qdrant only accepts
// unsigned integers and UUIDs.
func validatePointID(id string) error {
	if _, err := strconv.ParseUint(id, 10, 64); err == nil {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: point id %q is neither an unsigned integer nor a UUID", vectordb.ErrInvalidArgument, id)
	}
	return nil
}

// pointID maps a validated ID to a Qdrant point ID.
func pointID(id string) *qdrant.PointId {
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return qdrant.NewIDNum(n)
	}
	return qdrant.NewID(id)
}

// extractPointID extracts a string ID from Qdrant's PointId type.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("qdrant: nil point id")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return strconv.FormatUint(v.Num, 10), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("qdrant: unexpected point id type %T", v)
	}
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}

// toPoint builds an upsert point. Payload values must be JSON-like: strings,
// numbers, bools, nil, slices and maps of those.
func toPoint(in vectordb.EmbeddingInput) (*qdrant.PointStruct, error) {
	payload, err := qdrant.TryValueMap(in.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload of point %q: %v", vectordb.ErrInvalidArgument, in.ID, err)
	}
	return &qdrant.PointStruct{
		Id:      pointID(in.ID),
		Vectors: qdrant.NewVectors(toFloat32(in.Vector)...),
		Payload: payload,
	}, nil
}

// parseSearchResults converts a Qdrant response to vectordb results.
func parseSearchResults(collection string, resp []*qdrant.ScoredPoint) ([]vectordb.SearchResult, error) {
	results := make([]vectordb.SearchResult, 0, len(resp))
	for _, r := range resp {
		id, err := extractPointID(r.GetId())
		if err != nil {
			return nil, err
		}
		results = append(results, vectordb.SearchResult{
			ID:             id,
			Score:          float64(r.GetScore()),
			Payload:        convertPayload(r.GetPayload()),
			CollectionName: collection,
		})
	}
	return results, nil
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

// extractVectorDetails returns the vector size and distance of a collection
// with a single unnamed vector, or (0, "") otherwise.
func extractVectorDetails(info *qdrant.CollectionInfo) (int, string) {
	params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return 0, ""
	}
	return int(params.GetSize()), params.GetDistance().String()
}
