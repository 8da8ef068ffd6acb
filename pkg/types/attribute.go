package types

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Attribute value types determine what values a declared attribute accepts.
const (
	ValueTypeText      = "text"
	ValueTypeInteger   = "integer"
	ValueTypeNumber    = "number"
	ValueTypeBoolean   = "boolean"
	ValueTypeTimestamp = "timestamp"
	ValueTypeList      = "list"
	ValueTypeID        = "id"
)

// validValueTypes is the set of recognized attribute value types.
var validValueTypes = map[string]bool{
	ValueTypeText:      true,
	ValueTypeInteger:   true,
	ValueTypeNumber:    true,
	ValueTypeBoolean:   true,
	ValueTypeTimestamp: true,
	ValueTypeList:      true,
	ValueTypeID:        true,
}

// IsValidValueType reports whether the given string is a recognized value type.
func IsValidValueType(vt string) bool {
	return validValueTypes[vt]
}

// AttributeSpec declares one domain attribute of an entity type.
type AttributeSpec struct {
	Name      string `json:"name" yaml:"name"`
	ValueType string `json:"type" yaml:"type"`
	Required  bool   `json:"required" yaml:"required"`
}

// errWrongType is returned by Normalize; the registry wraps it with the type
// and field names.
var errWrongType = errors.New("wrong value type")

// Validate checks that the attribute can be declared on a type.
func (s AttributeSpec) Validate() error {
	if s.Name == "" {
		return ErrInvalidName
	}
	if IsReservedField(s.Name) {
		return fmt.Errorf("%w: %q is a reserved field", ErrInvalidName, s.Name)
	}
	if !IsValidValueType(s.ValueType) {
		return fmt.Errorf("unknown value type %q", s.ValueType)
	}
	return nil
}

// Normalize converts v to the canonical Go representation of the attribute's
// value type: string, int64, float64, bool, time.Time, []any or uuid.UUID.
// Decoders hand over whatever their wire format produced (float64 from JSON,
// int8 from MessagePack, RFC 3339 strings for timestamps), so the accepted
// input forms are wider than the output.
func (s AttributeSpec) Normalize(v any) (any, error) {
	switch s.ValueType {
	case ValueTypeText:
		if x, ok := v.(string); ok {
			return x, nil
		}
	case ValueTypeInteger:
		if n, ok := toInt64(v); ok {
			return n, nil
		}
	case ValueTypeNumber:
		if f, ok := toFloat64(v); ok {
			return f, nil
		}
	case ValueTypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case ValueTypeTimestamp:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			t, err := time.Parse(time.RFC3339Nano, x)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errWrongType, err)
			}
			return t, nil
		}
	case ValueTypeList:
		switch x := v.(type) {
		case []any:
			return x, nil
		case []string:
			out := make([]any, len(x))
			for i, e := range x {
				out[i] = e
			}
			return out, nil
		}
	case ValueTypeID:
		switch x := v.(type) {
		case uuid.UUID:
			return x, nil
		case string:
			id, err := uuid.Parse(x)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errWrongType, err)
			}
			return id, nil
		}
	}
	return nil, fmt.Errorf("%w: want %s, got %T", errWrongType, s.ValueType, v)
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if x != math.Trunc(x) || x >= math.MaxInt64 || x < math.MinInt64 {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	if n, ok := toInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}
