// Package resource defines the Contact resource: its persisted model
// and the schema the record validator enforces on raw input.
package resource

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kettleops/bulkrest/internal/bulk"
)

var validate = validator.New()

// FieldKind is the JSON type a field's raw value must decode to before
// any rule runs. Checking the kind first keeps validator.Var from ever
// seeing a mistyped value.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
)

// Field describes one writable (or read-only) field of a resource.
type Field struct {
	Name string
	Kind FieldKind
	// Rules are validator/v10 tags applied with validate.Var, e.g.
	// "required,email". "required" here only governs tag evaluation of
	// present values; presence itself is driven by Required.
	Rules string
	// Required fields must be present on create and non-partial update.
	Required bool
	// ReadOnly fields are stripped from normalized values.
	ReadOnly bool
}

// Schema validates raw records for one resource. It is stateless and
// safe for concurrent use.
type Schema struct {
	resource string
	lookup   string
	fields   []Field
}

// NewSchema builds a schema. lookup names the identity field used for
// bulk update matching.
func NewSchema(resource, lookup string, fields []Field) *Schema {
	return &Schema{resource: resource, lookup: lookup, fields: fields}
}

// LookupField implements bulk.RecordValidator.
func (s *Schema) LookupField() string { return s.lookup }

// Resource returns the resource name the schema validates.
func (s *Schema) Resource() string { return s.resource }

// ValidateRecord normalizes one raw record. Unknown keys are ignored;
// read-only fields are dropped. The returned detail is empty when the
// record is valid.
func (s *Schema) ValidateRecord(opCtx bulk.OperationContext, record map[string]any) (map[string]any, bulk.ErrorDetail) {
	value := make(map[string]any, len(s.fields))
	detail := bulk.ErrorDetail{}

	for _, field := range s.fields {
		raw, present := record[field.Name]

		if !present || raw == nil {
			if field.Required && !opCtx.Partial && !field.ReadOnly {
				detail[field.Name] = append(detail[field.Name], bulk.FieldError{
					Message: bulk.MsgRequired,
					Code:    bulk.CodeRequired,
				})
			}
			continue
		}
		if field.ReadOnly {
			continue
		}

		normalized, fieldErr := s.checkField(field, raw)
		if fieldErr != nil {
			detail[field.Name] = append(detail[field.Name], *fieldErr)
			continue
		}
		value[field.Name] = normalized
	}

	if len(detail) > 0 {
		return nil, detail
	}
	return value, nil
}

// checkField verifies the raw value's kind and then its tag rules.
func (s *Schema) checkField(field Field, raw any) (any, *bulk.FieldError) {
	switch field.Kind {
	case KindString:
		str, ok := raw.(string)
		if !ok {
			return nil, &bulk.FieldError{Message: "Not a valid string.", Code: bulk.CodeInvalid}
		}
		if field.Rules != "" {
			if err := validate.Var(str, field.Rules); err != nil {
				return nil, tagError(err)
			}
		}
		return str, nil
	case KindNumber:
		num, ok := raw.(float64)
		if !ok {
			return nil, &bulk.FieldError{Message: "A valid number is required.", Code: bulk.CodeInvalid}
		}
		if field.Rules != "" {
			if err := validate.Var(num, field.Rules); err != nil {
				return nil, tagError(err)
			}
		}
		return num, nil
	default:
		return nil, &bulk.FieldError{Message: "Unsupported field kind.", Code: bulk.CodeInvalid}
	}
}

// tagError converts a validator/v10 error into a FieldError whose code
// is the failing tag.
func tagError(err error) *bulk.FieldError {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		tag := errs[0].Tag()
		return &bulk.FieldError{
			Message: fmt.Sprintf("This value failed the %q constraint.", tag),
			Code:    tag,
		}
	}
	return &bulk.FieldError{Message: "Invalid value.", Code: bulk.CodeInvalid}
}
