// Package bulk implements the bulk validation and partial-failure
// reconciliation protocol: validate a heterogeneous list of records,
// correlate per-position outcomes back to their input index, apply the
// mutation only to the valid subset, and assemble either a plain or a
// multi-status response.
package bulk

import "context"

// NonFieldKey is the reserved error-detail key for errors that are not
// attributable to a single field of a record.
const NonFieldKey = "non_field_errors"

// FieldError is one structured validation error for a field.
type FieldError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorDetail maps a field name (or NonFieldKey) to its errors, in the
// order they were raised.
type ErrorDetail map[string][]FieldError

// Detail builds a single-field ErrorDetail.
func Detail(field, message, code string) ErrorDetail {
	return ErrorDetail{field: {{Message: message, Code: code}}}
}

// Outcome is the result of validating one input record. Exactly one of
// Value and Errors is set.
type Outcome struct {
	// Value is the normalized record when validation succeeded.
	Value map[string]any
	// Errors carries the structured detail when validation failed.
	Errors ErrorDetail
}

// Valid reports whether the record passed validation.
func (o Outcome) Valid() bool { return len(o.Errors) == 0 }

// OutcomeSet is the ordered, index-aligned sequence of Outcomes for one
// request: OutcomeSet[i] corresponds to input record i. It is produced
// once by the orchestrator and read-only afterwards.
type OutcomeSet []Outcome

// ValidValues returns the normalized values of the valid outcomes,
// preserving their relative input order.
func (s OutcomeSet) ValidValues() []map[string]any {
	values := make([]map[string]any, 0, len(s))
	for _, o := range s {
		if o.Valid() {
			values = append(values, o.Value)
		}
	}
	return values
}

// InvalidCount returns the number of failed positions.
func (s OutcomeSet) InvalidCount() int {
	n := 0
	for _, o := range s {
		if !o.Valid() {
			n++
		}
	}
	return n
}

// Operation identifies which mutation a validation pass is feeding.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
)

// OperationContext carries the request-scoped validation parameters.
// It is passed explicitly instead of being fetched from ambient state.
type OperationContext struct {
	// Operation is the mutation the records are destined for.
	Operation Operation
	// Partial relaxes required-field rules (PATCH semantics).
	Partial bool
	// LookupField is the identity field used to match update records
	// to persisted entities.
	LookupField string
}

// RecordValidator validates a single record against a resource schema.
// Implementations must be pure: validating the same record twice yields
// identical details.
type RecordValidator interface {
	// ValidateRecord returns the normalized value, or a non-empty
	// ErrorDetail when the record is invalid.
	ValidateRecord(opCtx OperationContext, record map[string]any) (map[string]any, ErrorDetail)
	// LookupField names the identity field for update matching.
	LookupField() string
}

// Entity is one persisted resource as seen by the coordinator.
type Entity interface {
	// Field returns the entity's value for a wire field name.
	Field(name string) any
	// Representation renders the entity in its single-record wire shape.
	Representation() map[string]any
}

// Queryset is a lazily-filtered selection of entities. Filter must
// return a new Queryset so the destructive-scope guard can compare the
// filtered selection against the base one by identity.
type Queryset interface {
	Filter(field string, values []any) Queryset
}

// Store is the external entity store the coordinator mutates through.
type Store interface {
	Create(ctx context.Context, values map[string]any) (Entity, error)
	Update(ctx context.Context, entity Entity, values map[string]any) (Entity, error)
	// FindByKeys issues one batched lookup for all requested keys.
	FindByKeys(ctx context.Context, field string, keys []any) ([]Entity, error)
	// DeleteAll removes every entity matched by the queryset as one
	// logical batch.
	DeleteAll(ctx context.Context, qs Queryset) (int64, error)
}
