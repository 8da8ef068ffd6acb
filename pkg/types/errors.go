package types

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Store operation errors.
var (
	ErrNotFound       = errors.New("entity not found")
	ErrInvalidData    = errors.New("invalid entity data")
	ErrNodeReferenced = errors.New("node is referenced by a relation")
)

// Validation errors. ConstraintViolation, UnknownTypeError and
// SchemaMismatchError match these with errors.Is.
var (
	ErrConstraintViolation = errors.New("constraint violation")
	ErrUnknownType         = errors.New("unknown type")
	ErrSchemaMismatch      = errors.New("schema mismatch")
)

// Type declaration errors.
var (
	ErrUnknownKind         = errors.New("unknown entity kind")
	ErrInvalidName         = errors.New("invalid name")
	ErrContradictoryConfig = errors.New("contradictory configuration")
	ErrRegistrySealed      = errors.New("registry is sealed")
)

// Rule names a constraint enforced by the validator.
type Rule string

// Enforced rules. On edges, symmetric, reflexive, transitive and inverse
// grant permission only and are never enforced. RuleCyclic and RuleReflexive
// apply to hyperedges declared without those permissions.
const (
	RuleIrreflexive       Rule = "irreflexive"
	RuleAsymmetric        Rule = "asymmetric"
	RuleAntisymmetric     Rule = "antisymmetric"
	RuleFunctional        Rule = "functional"
	RuleInverseFunctional Rule = "inverse_functional"
	RuleUnique            Rule = "unique"
	RuleCyclic            Rule = "cyclic"
	RuleReflexive         Rule = "reflexive"
)

// ConstraintViolation reports a candidate relation rejected because it breaks
// a configured invariant against the existing relations of its type. The
// store is left unchanged.
type ConstraintViolation struct {
	Rule         Rule
	Kind         Kind
	RelationType string
	CandidateID  uuid.UUID
	// ConflictID is the existing relation the candidate collides with, or
	// uuid.Nil for rules that only inspect the candidate.
	ConflictID uuid.UUID
	Detail     string
}

func (v *ConstraintViolation) Error() string {
	msg := fmt.Sprintf("%s %s %s violates %s", v.Kind, v.RelationType, v.CandidateID, v.Rule)
	if v.ConflictID != uuid.Nil {
		msg += fmt.Sprintf(" (conflicts with %s)", v.ConflictID)
	}
	if v.Detail != "" {
		msg += ": " + v.Detail
	}
	return msg
}

// Is reports whether target is ErrConstraintViolation.
func (v *ConstraintViolation) Is(target error) bool {
	return target == ErrConstraintViolation
}

// UnknownTypeError is returned when a record names a type that was never
// registered for its kind.
type UnknownTypeError struct {
	Kind Kind
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Kind, e.Name)
}

// Is reports whether target is ErrUnknownType.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// SchemaMismatchError is returned when a record's fields do not satisfy the
// registered schema of its declared type.
type SchemaMismatchError struct {
	Type   string
	Field  string
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("type %q: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("type %q: field %q: %s", e.Type, e.Field, e.Reason)
}

// Is reports whether target is ErrSchemaMismatch.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
