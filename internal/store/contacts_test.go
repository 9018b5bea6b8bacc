package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kettleops/bulkrest/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ContactStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewContactStore(db)
}

func seed(t *testing.T, s *ContactStore, contacts ...resource.Contact) []uint {
	t.Helper()
	ids := make([]uint, 0, len(contacts))
	for _, c := range contacts {
		entity, err := s.Create(context.Background(), map[string]any{
			"name":  c.Name,
			"email": c.Email,
			"group": c.GroupName,
		})
		require.NoError(t, err)
		ids = append(ids, entity.(*resource.Contact).ID)
	}
	return ids
}

func TestCreateAndList(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		resource.Contact{Name: "Alice", Email: "alice@example.com", GroupName: "sales"},
		resource.Contact{Name: "Bob", Email: "bob@example.com", GroupName: "ops"},
	)

	contacts, err := s.List(context.Background(), s.Query())
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Alice", contacts[0].Name)
	assert.Equal(t, "Bob", contacts[1].Name)
}

func TestFindByKeys(t *testing.T) {
	s := newTestStore(t)
	ids := seed(t, s,
		resource.Contact{Name: "Alice", Email: "alice@example.com"},
		resource.Contact{Name: "Bob", Email: "bob@example.com"},
		resource.Contact{Name: "Carol", Email: "carol@example.com"},
	)

	entities, err := s.FindByKeys(context.Background(), "id", []any{float64(ids[0]), float64(ids[2])})
	require.NoError(t, err)
	require.Len(t, entities, 2)

	// Missing keys simply shrink the result; the coordinator treats the
	// count mismatch as fatal.
	entities, err = s.FindByKeys(context.Background(), "id", []any{float64(ids[0]), float64(9999)})
	require.NoError(t, err)
	assert.Len(t, entities, 1)
}

func TestFindByKeysRejectsUnknownField(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindByKeys(context.Background(), "name", []any{"Alice"})
	assert.Error(t, err)
}

func TestUpdatePersists(t *testing.T) {
	s := newTestStore(t)
	ids := seed(t, s, resource.Contact{Name: "Alice", Email: "alice@example.com"})

	entities, err := s.FindByKeys(context.Background(), "id", []any{float64(ids[0])})
	require.NoError(t, err)
	require.Len(t, entities, 1)

	updated, err := s.Update(context.Background(), entities[0], map[string]any{"name": "Alicia"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Field("name"))

	contacts, err := s.List(context.Background(), s.Query())
	require.NoError(t, err)
	assert.Equal(t, "Alicia", contacts[0].Name)
	assert.Equal(t, "alice@example.com", contacts[0].Email)
}

func TestDeleteAllFiltered(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		resource.Contact{Name: "Alice", Email: "alice@example.com", GroupName: "sales"},
		resource.Contact{Name: "Bob", Email: "bob@example.com", GroupName: "ops"},
		resource.Contact{Name: "Carol", Email: "carol@example.com", GroupName: "sales"},
	)

	deleted, err := s.DeleteAll(context.Background(), s.Query().Filter("group", []any{"sales"}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	contacts, err := s.List(context.Background(), s.Query())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Bob", contacts[0].Name)
}

func TestFilterAllocatesNewQueryset(t *testing.T) {
	s := newTestStore(t)
	base := s.Query()
	filtered := base.Filter("group", []any{"sales"})

	// The destructive-scope guard compares by identity, so a filter must
	// never hand back the base queryset.
	assert.NotSame(t, base, filtered)
}

func TestFilterUnknownFieldMatchesNothing(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, resource.Contact{Name: "Alice", Email: "alice@example.com"})

	contacts, err := s.List(context.Background(), s.Query().Filter("bogus", []any{"x"}))
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
