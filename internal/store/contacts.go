package store

import (
	"context"
	"fmt"

	"github.com/kettleops/bulkrest/internal/bulk"
	"github.com/kettleops/bulkrest/internal/resource"
	"gorm.io/gorm"
)

// ContactStore implements bulk.Store over the contacts table.
type ContactStore struct {
	db *gorm.DB
}

// NewContactStore wraps an opened database.
func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Query returns the unfiltered base queryset for contacts.
func (s *ContactStore) Query() bulk.Queryset {
	return &ContactQueryset{db: s.db}
}

// Create persists a new contact from normalized values.
func (s *ContactStore) Create(ctx context.Context, values map[string]any) (bulk.Entity, error) {
	contact := resource.FromValues(values)
	if err := s.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return contact, nil
}

// Update applies normalized values to an existing contact and saves it.
func (s *ContactStore) Update(ctx context.Context, entity bulk.Entity, values map[string]any) (bulk.Entity, error) {
	contact, ok := entity.(*resource.Contact)
	if !ok {
		return nil, fmt.Errorf("unexpected entity type %T", entity)
	}
	contact.Apply(values)
	if err := s.db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, fmt.Errorf("save contact: %w", err)
	}
	return contact, nil
}

// FindByKeys issues one batched lookup for every requested key on the
// given wire field.
func (s *ContactStore) FindByKeys(ctx context.Context, field string, keys []any) ([]bulk.Entity, error) {
	column, ok := resource.Column(field)
	if !ok {
		return nil, fmt.Errorf("field %q is not queryable", field)
	}

	var contacts []resource.Contact
	err := s.db.WithContext(ctx).
		Where(fmt.Sprintf("%s IN ?", column), keys).
		Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("lookup contacts: %w", err)
	}

	entities := make([]bulk.Entity, len(contacts))
	for i := range contacts {
		entities[i] = &contacts[i]
	}
	return entities, nil
}

// DeleteAll removes every contact matched by the queryset as one batch
// delete statement.
func (s *ContactStore) DeleteAll(ctx context.Context, qs bulk.Queryset) (int64, error) {
	cq, ok := qs.(*ContactQueryset)
	if !ok {
		return 0, fmt.Errorf("unexpected queryset type %T", qs)
	}
	result := cq.tx(ctx).Delete(&resource.Contact{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete contacts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// List fetches the contacts matched by the queryset in id order.
func (s *ContactStore) List(ctx context.Context, qs bulk.Queryset) ([]resource.Contact, error) {
	cq, ok := qs.(*ContactQueryset)
	if !ok {
		return nil, fmt.Errorf("unexpected queryset type %T", qs)
	}
	var contacts []resource.Contact
	if err := cq.tx(ctx).Order("id").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}
