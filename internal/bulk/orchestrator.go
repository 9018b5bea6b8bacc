package bulk

import (
	"fmt"
	"sync"

	"github.com/kettleops/bulkrest/internal/utils"
	"go.uber.org/zap"
)

// Mode selects the orchestrator's failure strategy.
type Mode int

const (
	// ModeStrict aborts the whole request on the first invalid record,
	// surfacing that record's detail as the request failure.
	ModeStrict Mode = iota
	// ModeTolerant validates every record and collects per-position
	// outcomes; it never aborts the loop.
	ModeTolerant
)

// Orchestrator drives the record validator over an input list and
// produces the index-aligned OutcomeSet.
type Orchestrator struct {
	validator  RecordValidator
	allowEmpty bool
}

// NewOrchestrator constructs an Orchestrator for one resource schema.
func NewOrchestrator(validator RecordValidator, allowEmpty bool) *Orchestrator {
	return &Orchestrator{validator: validator, allowEmpty: allowEmpty}
}

// Validate produces one Outcome per input record, at the same index.
// The records slice must already be list-shaped (see DecodeList); an
// empty list is fatal when empty lists are disallowed.
func (o *Orchestrator) Validate(records []map[string]any, mode Mode, opCtx OperationContext) (OutcomeSet, error) {
	if len(records) == 0 && !o.allowEmpty {
		return nil, Fatal(KindEmpty, MsgEmptyList)
	}

	outcomes := make(OutcomeSet, len(records))

	if mode == ModeStrict {
		for i, record := range records {
			outcome := o.validateOne(record, opCtx)
			if !outcome.Valid() {
				return nil, &FatalError{Kind: KindValidation, Detail: outcome.Errors}
			}
			outcomes[i] = outcome
		}
		return outcomes, nil
	}

	// Records are independent, so fan out one worker per record. Each
	// worker writes its outcome back by original index, never by
	// completion order, keeping the set aligned with the input.
	var wg sync.WaitGroup
	for i, record := range records {
		wg.Add(1)
		go func(i int, record map[string]any) {
			defer wg.Done()
			outcomes[i] = o.validateOne(record, opCtx)
		}(i, record)
	}
	wg.Wait()

	utils.Logger.Debug("Validated bulk input",
		zap.Int(utils.FieldTotal, len(outcomes)),
		zap.Int(utils.FieldInvalid, outcomes.InvalidCount()),
		zap.String(utils.FieldOperation, string(opCtx.Operation)))

	return outcomes, nil
}

// validateOne validates a single record under the operation context.
func (o *Orchestrator) validateOne(record map[string]any, opCtx OperationContext) Outcome {
	if record == nil {
		// A list element that was not a JSON object.
		return Outcome{Errors: Detail(NonFieldKey, fmt.Sprintf(MsgNotADictFmt, "a non-object value"), CodeInvalid)}
	}

	var lookupValue any
	if opCtx.Operation == OpUpdate {
		value, ok := record[opCtx.LookupField]
		if !ok || value == nil || value == "" {
			return Outcome{Errors: Detail(opCtx.LookupField, MsgRequired, CodeRequired)}
		}
		lookupValue = value
	}

	value, detail := o.validator.ValidateRecord(opCtx, record)
	if len(detail) > 0 {
		return Outcome{Errors: detail}
	}

	// The lookup field is read-only and stripped during normalization;
	// put the raw value back so identity matching can see it.
	if opCtx.Operation == OpUpdate {
		value[opCtx.LookupField] = lookupValue
	}
	return Outcome{Value: value}
}
