package store

import (
	"context"

	"github.com/kettleops/bulkrest/internal/bulk"
	"github.com/kettleops/bulkrest/internal/resource"
	"gorm.io/gorm"
)

// ContactQueryset is a lazily-evaluated selection of contacts. Filter
// always allocates a new queryset, so the coordinator's scope guard can
// tell "the base set" from "the base set with a no-op filter" by
// pointer identity alone.
type ContactQueryset struct {
	db      *gorm.DB
	clauses []clause
}

type clause struct {
	column string
	values []any
}

// Filter narrows the selection to rows whose field matches one of the
// values. Unknown fields produce a clause that matches nothing rather
// than an error; the handler whitelists fields before calling.
func (q *ContactQueryset) Filter(field string, values []any) bulk.Queryset {
	column, ok := resource.Column(field)
	if !ok {
		column = ""
	}
	next := make([]clause, len(q.clauses), len(q.clauses)+1)
	copy(next, q.clauses)
	next = append(next, clause{column: column, values: values})
	return &ContactQueryset{db: q.db, clauses: next}
}

// tx builds the gorm query for the accumulated clauses.
func (q *ContactQueryset) tx(ctx context.Context) *gorm.DB {
	tx := q.db.WithContext(ctx).Model(&resource.Contact{})
	for _, c := range q.clauses {
		switch {
		case c.column == "" || len(c.values) == 0:
			tx = tx.Where("1 = 0")
		case len(c.values) == 1:
			tx = tx.Where(c.column+" = ?", c.values[0])
		default:
			tx = tx.Where(c.column+" IN ?", c.values)
		}
	}
	return tx
}
