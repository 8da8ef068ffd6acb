package types

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Record is the untyped attribute form of an entity: the unit of
// serialization and the input of Registry.Load. Attributes are flattened at
// the top level next to the reserved fields.
type Record map[string]any

// Reserved record fields.
const (
	FieldKind    = "kind"
	FieldID      = "id"
	FieldType    = "type"
	FieldConfig  = "config"
	FieldSource  = "source"
	FieldTarget  = "target"
	FieldSources = "sources"
	FieldTargets = "targets"
)

var reservedFields = map[string]bool{
	FieldKind:    true,
	FieldID:      true,
	FieldType:    true,
	FieldConfig:  true,
	FieldSource:  true,
	FieldTarget:  true,
	FieldSources: true,
	FieldTargets: true,
}

// IsReservedField reports whether name is a field every record carries and
// therefore cannot be used as an attribute name.
func IsReservedField(name string) bool {
	return reservedFields[name]
}

// Kind returns the record's kind field, or "" when absent or not a string.
func (r Record) Kind() Kind {
	s, _ := r[FieldKind].(string)
	return Kind(s)
}

// TypeName returns the record's type discriminant, or "" when absent or not
// a string.
func (r Record) TypeName() string {
	s, _ := r[FieldType].(string)
	return s
}

func newRecord(kind Kind, id uuid.UUID, typeName string, attrs map[string]any) Record {
	rec := make(Record, len(attrs)+5)
	for k, v := range attrs {
		rec[k] = recordValue(v)
	}
	rec[FieldKind] = string(kind)
	rec[FieldID] = id.String()
	rec[FieldType] = typeName
	return rec
}

// recordValue converts attribute values to the forms every codec can carry
// and the registry decodes back: identities and timestamps become strings.
func recordValue(v any) any {
	switch x := v.(type) {
	case uuid.UUID:
		return x.String()
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = recordValue(e)
		}
		return out
	default:
		return v
	}
}

// cloneAttributes copies attrs and every list value in it, so the copy can
// be mutated without touching the original.
func cloneAttributes(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := maps.Clone(attrs)
	for k, v := range out {
		if list, ok := v.([]any); ok {
			out[k] = cloneList(list)
		}
	}
	return out
}

func cloneList(list []any) []any {
	out := slices.Clone(list)
	for i, v := range out {
		if inner, ok := v.([]any); ok {
			out[i] = cloneList(inner)
		}
	}
	return out
}
