package bulk

import (
	"context"
	"fmt"

	"github.com/kettleops/bulkrest/internal/utils"
	"go.uber.org/zap"
)

// Result is the outcome of a bulk create or update: either a plain list
// of representations (every record succeeded) or a per-position
// multi-status list.
type Result struct {
	MultiStatus bool
	// Records holds the plain success payload when MultiStatus is false.
	Records []map[string]any
	// Statuses holds the per-position payload when MultiStatus is true.
	Statuses []RecordStatus
}

// Coordinator consumes the orchestrator's correlated outcomes, applies
// the mutation to the valid subset only, and assembles the response.
type Coordinator struct {
	orch  *Orchestrator
	store Store
}

// NewCoordinator wires the orchestrator to an entity store.
func NewCoordinator(orch *Orchestrator, store Store) *Coordinator {
	return &Coordinator{orch: orch, store: store}
}

// BulkCreate validates every record in tolerant mode, creates entities
// for the valid subset in input order, and reports per-position results
// when any record failed.
func (co *Coordinator) BulkCreate(ctx context.Context, records []map[string]any) (*Result, error) {
	opCtx := OperationContext{Operation: OpCreate, LookupField: co.orch.validator.LookupField()}
	outcomes, err := co.orch.Validate(records, ModeTolerant, opCtx)
	if err != nil {
		return nil, err
	}

	created := make([]map[string]any, 0, len(outcomes))
	for _, value := range outcomes.ValidValues() {
		entity, err := co.store.Create(ctx, value)
		if err != nil {
			return nil, fmt.Errorf("create entity: %w", err)
		}
		created = append(created, entity.Representation())
	}

	utils.Logger.Info("Bulk create finished",
		zap.Int(utils.FieldTotal, len(outcomes)),
		zap.Int(utils.FieldInvalid, outcomes.InvalidCount()))

	if outcomes.InvalidCount() == 0 {
		return &Result{Records: created}, nil
	}
	return &Result{MultiStatus: true, Statuses: BuildMultiStatus(outcomes, created)}, nil
}

// BulkUpdate validates every record in tolerant mode, resolves each
// valid record to exactly one persisted entity via the lookup field, and
// applies the updates. Identity failures are fatal for the whole request
// and happen before any mutation.
func (co *Coordinator) BulkUpdate(ctx context.Context, records []map[string]any, partial bool) (*Result, error) {
	lookupField := co.orch.validator.LookupField()
	opCtx := OperationContext{Operation: OpUpdate, Partial: partial, LookupField: lookupField}
	outcomes, err := co.orch.Validate(records, ModeTolerant, opCtx)
	if err != nil {
		return nil, err
	}

	// A set whose only errors are shape-level means the body was
	// unusable, not that some records failed.
	if shapeOnly(outcomes) {
		return nil, &FatalError{Kind: KindNotAList, Detail: outcomes[0].Errors}
	}

	updated, err := co.applyUpdates(ctx, outcomes.ValidValues(), lookupField)
	if err != nil {
		return nil, err
	}

	utils.Logger.Info("Bulk update finished",
		zap.Int(utils.FieldTotal, len(outcomes)),
		zap.Int(utils.FieldInvalid, outcomes.InvalidCount()),
		zap.Bool("partial", partial))

	if outcomes.InvalidCount() == 0 {
		return &Result{Records: updated}, nil
	}
	return &Result{MultiStatus: true, Statuses: BuildMultiStatus(outcomes, updated)}, nil
}

// applyUpdates performs identity matching and then the per-entity
// updates. Representations come back in the valid values' input order.
func (co *Coordinator) applyUpdates(ctx context.Context, values []map[string]any, lookupField string) ([]map[string]any, error) {
	byKey := make(map[string]map[string]any, len(values))
	keys := make([]any, 0, len(values))
	for _, value := range values {
		key := value[lookupField]
		if !scalarKey(key) {
			return nil, Fatal(KindIdentity, MsgBadLookup)
		}
		ks := keyString(key)
		if _, seen := byKey[ks]; !seen {
			keys = append(keys, key)
		}
		byKey[ks] = value
	}

	if len(keys) == 0 {
		return []map[string]any{}, nil
	}

	entities, err := co.store.FindByKeys(ctx, lookupField, keys)
	if err != nil {
		return nil, fmt.Errorf("lookup entities: %w", err)
	}
	if len(entities) != len(keys) {
		utils.Logger.Warn("Bulk update identity mismatch",
			zap.Int("requested", len(keys)),
			zap.Int("matched", len(entities)))
		return nil, Fatal(KindIdentity, MsgNotAllFound)
	}

	matched := make(map[string]Entity, len(entities))
	for _, entity := range entities {
		matched[keyString(entity.Field(lookupField))] = entity
	}

	// Render in the surviving input order regardless of store order.
	updated := make([]map[string]any, 0, len(values))
	for _, value := range values {
		ks := keyString(value[lookupField])
		entity, ok := matched[ks]
		if !ok {
			return nil, Fatal(KindIdentity, MsgNotAllFound)
		}
		fresh, err := co.store.Update(ctx, entity, byKey[ks])
		if err != nil {
			return nil, fmt.Errorf("update entity: %w", err)
		}
		updated = append(updated, fresh.Representation())
	}
	return updated, nil
}

// BulkDestroy deletes the entities selected by the filtered queryset,
// optionally narrowed by an explicit ids selector. The destructive-scope
// guard refuses to operate on the unfiltered base set.
func (co *Coordinator) BulkDestroy(ctx context.Context, base, filtered Queryset, rawIDs string) (int64, error) {
	if rawIDs != "" {
		ids, err := ParseIDSelector(rawIDs)
		if err != nil {
			return 0, err
		}
		filtered = filtered.Filter(co.orch.validator.LookupField(), ids)
	}

	if filtered == base {
		utils.Logger.Warn("Bulk destroy rejected: no filter applied")
		return 0, Fatal(KindDestructiveScope, MsgUnfilteredDo)
	}

	deleted, err := co.store.DeleteAll(ctx, filtered)
	if err != nil {
		return 0, fmt.Errorf("delete entities: %w", err)
	}
	utils.Logger.Info("Bulk destroy finished", zap.Int64("deleted", deleted))
	return deleted, nil
}

// scalarKey rejects lookup values that could make identity matching
// ambiguous: containers, nil, empty strings, zero numbers.
func scalarKey(v any) bool {
	switch k := v.(type) {
	case string:
		return k != ""
	case float64:
		return k != 0
	case int, int64, uint, uint64:
		return keyString(k) != "0"
	case bool:
		return k
	default:
		return false
	}
}

// keyString normalizes a lookup value for map correlation. JSON numbers
// decode as float64 while store ids are integers, so both must collapse
// to the same key.
func keyString(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}
