// Package repositories holds the data access for customers, products and
// orders. Repositories are bound to a *orm.Query; WithTx rebinds one to a
// transaction.
package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/crm/app/filters"
	"github.com/shashiranjanraj/crm/pkg/orm"
)

// Page selects a window of a result set. Limit <= 0 means no limit.
type Page struct {
	Offset int
	Limit  int
}

func queryFor(db *gorm.DB) *orm.Query {
	if db == nil {
		return orm.DB()
	}
	return orm.New(db)
}

// list counts the filtered rows and fetches one ordered page of them.
func list[T any](ctx context.Context, q *orm.Query, filter func(*gorm.DB) *gorm.DB,
	sorting filters.Sorting, orderBy []string, page Page, preloads ...string,
) ([]T, int64, error) {
	var model T
	base := q.WithContext(ctx).Model(&model).Apply(filter).Session()

	total, err := base.Count()
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", sorting.Table, err)
	}

	order, err := sorting.Scope(orderBy)
	if err != nil {
		return nil, 0, err
	}

	fetch := base.Apply(order).Page(page.Offset, page.Limit)
	for _, p := range preloads {
		fetch = fetch.Preload(p)
	}

	var rows []T
	if err := fetch.Get(&rows); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", sorting.Table, err)
	}
	return rows, total, nil
}
