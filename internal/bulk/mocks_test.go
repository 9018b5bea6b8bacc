package bulk

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"
)

// stubValidator accepts any record with a non-empty "name" string and
// normalizes it to {"name": ...}.
type stubValidator struct {
	lookup string
}

func (v *stubValidator) LookupField() string { return v.lookup }

func (v *stubValidator) ValidateRecord(opCtx OperationContext, record map[string]any) (map[string]any, ErrorDetail) {
	name, ok := record["name"].(string)
	if !ok || name == "" {
		return nil, Detail("name", MsgRequired, CodeRequired)
	}
	return map[string]any{"name": name}, nil
}

// fakeEntity backs the store mocks.
type fakeEntity struct {
	fields map[string]any
}

func (e *fakeEntity) Field(name string) any { return e.fields[name] }

func (e *fakeEntity) Representation() map[string]any { return e.fields }

func entity(id int64, name string) *fakeEntity {
	return &fakeEntity{fields: map[string]any{"id": id, "name": name}}
}

// fakeQueryset records the filters applied to it.
type fakeQueryset struct {
	clauses []string
}

func (q *fakeQueryset) Filter(field string, values []any) Queryset {
	next := make([]string, len(q.clauses), len(q.clauses)+1)
	copy(next, q.clauses)
	next = append(next, fmt.Sprintf("%s=%v", field, values))
	return &fakeQueryset{clauses: next}
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, values map[string]any) (Entity, error) {
	args := m.Called(ctx, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Entity), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, entity Entity, values map[string]any) (Entity, error) {
	args := m.Called(ctx, entity, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Entity), args.Error(1)
}

func (m *MockStore) FindByKeys(ctx context.Context, field string, keys []any) ([]Entity, error) {
	args := m.Called(ctx, field, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entity), args.Error(1)
}

func (m *MockStore) DeleteAll(ctx context.Context, qs Queryset) (int64, error) {
	args := m.Called(ctx, qs)
	return args.Get(0).(int64), args.Error(1)
}
