// Package orm is a thin chainable wrapper over *gorm.DB used by the
// repositories.
package orm

import (
	"context"

	"github.com/shashiranjanraj/crm/pkg/database"
	"gorm.io/gorm"
)

type Query struct {
	db *gorm.DB
}

// DB wraps the process-wide connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// New wraps an explicit connection or transaction.
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) WithContext(ctx context.Context) *Query {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Query{db: q.db.WithContext(ctx)}
}

// Session freezes the conditions built so far so the Query can be reused
// for several statements, e.g. a count followed by a page fetch.
func (q *Query) Session() *Query {
	return &Query{db: q.db.Session(&gorm.Session{})}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

// Apply runs fn against the underlying handle immediately, unlike gorm's
// deferred Scopes.
func (q *Query) Apply(fn func(*gorm.DB) *gorm.DB) *Query {
	return &Query{db: fn(q.db)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Preload(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(query, args...)}
}

// Page applies OFFSET/LIMIT. A non-positive limit leaves the query unbounded.
func (q *Query) Page(offset, limit int) *Query {
	db := q.db
	if offset > 0 {
		db = db.Offset(offset)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	return &Query{db: db}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

// Transaction runs fn inside a database transaction. fn must use the Query
// it receives, never the outer one.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Gorm exposes the underlying handle for calls the wrapper does not cover.
func (q *Query) Gorm() *gorm.DB {
	return q.db
}
